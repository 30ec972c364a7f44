package models

import "time"

type Exercise struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Reps      int       `json:"reps"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateExerciseRequest struct {
	Name string `json:"name"`
	Reps int    `json:"reps"`
}

type DeleteExerciseResponse struct {
	Message  string   `json:"message"`
	Exercise Exercise `json:"exercise"`
}

// Stats - агрегаты по упражнениям пользователя.
// AvgReps равен null в JSON, если у пользователя нет ни одного упражнения.
type Stats struct {
	TotalExercises int      `json:"total_exercises"`
	TotalReps      int      `json:"total_reps"`
	AvgReps        *float64 `json:"avg_reps"`
}
