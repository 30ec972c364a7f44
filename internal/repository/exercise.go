package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/utils"
)

var ErrExerciseNotFound = errors.New("упражнение не найдено")

// ExerciseRepository - контракт хранилища упражнений.
// Все операции ограничены владельцем: userID всегда входит в условие запроса.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	GetByUserID(ctx context.Context, userID string) ([]models.Exercise, error)
	Delete(ctx context.Context, exerciseID, userID string) (*models.Exercise, error)
	GetStats(ctx context.Context, userID string) (*models.Stats, error)
}

type PostgresExerciseRepository struct {
	db *pgxpool.Pool
}

func NewPostgresExerciseRepository(db *pgxpool.Pool) *PostgresExerciseRepository {
	utils.LogSuccess("ExerciseRepository", "Инициализирован репозиторий упражнений")
	return &PostgresExerciseRepository{db: db}
}

func (r *PostgresExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, user_id, name, reps)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, reps, created_at
	`

	exercise.ID = uuid.New().String()
	utils.LogDB("CREATE EXERCISE", fmt.Sprintf("Создание упражнения %q для пользователя %s", exercise.Name, exercise.UserID))

	err := r.db.QueryRow(ctx, query, exercise.ID, exercise.UserID, exercise.Name, exercise.Reps).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.Name,
		&exercise.Reps,
		&exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания упражнения: %w", err)
	}

	return nil
}

func (r *PostgresExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]models.Exercise, error) {
	query := `
		SELECT id, user_id, name, reps, created_at
		FROM exercises
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	utils.LogDB("LIST EXERCISES", fmt.Sprintf("Список упражнений пользователя %s", userID))

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка упражнений: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var exercise models.Exercise
		err := rows.Scan(
			&exercise.ID,
			&exercise.UserID,
			&exercise.Name,
			&exercise.Reps,
			&exercise.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования упражнения: %w", err)
		}
		exercises = append(exercises, exercise)
	}

	return exercises, rows.Err()
}

// Delete удаляет упражнение одним запросом с проверкой владельца.
// Чужой ID и несуществующий ID неразличимы: оба дают ErrExerciseNotFound.
func (r *PostgresExerciseRepository) Delete(ctx context.Context, exerciseID, userID string) (*models.Exercise, error) {
	query := `
		DELETE FROM exercises
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, reps, created_at
	`

	utils.LogDB("DELETE EXERCISE", fmt.Sprintf("Удаление упражнения %s пользователем %s", exerciseID, userID))

	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, exerciseID, userID).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.Name,
		&exercise.Reps,
		&exercise.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("ошибка удаления упражнения: %w", err)
	}

	return &exercise, nil
}

func (r *PostgresExerciseRepository) GetStats(ctx context.Context, userID string) (*models.Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(reps), 0), AVG(reps)
		FROM exercises
		WHERE user_id = $1
	`

	utils.LogDB("GET STATS", fmt.Sprintf("Статистика упражнений пользователя %s", userID))

	stats := &models.Stats{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.TotalExercises,
		&stats.TotalReps,
		&stats.AvgReps,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики: %w", err)
	}

	return stats, nil
}
