package handlers

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/repository"
	"fitness-tracker/internal/services"
	"fitness-tracker/internal/utils"
)

type ExerciseHandler struct {
	exerciseService *services.ExerciseService
}

func NewExerciseHandler(exerciseService *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
	}
}

// ListExercises обрабатывает GET /api/exercises - упражнения текущего пользователя,
// самые свежие первыми
func (h *ExerciseHandler) ListExercises(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("user_id").(string)
	if !ok {
		utils.LogError("ExerciseHandler", "user_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	exercises, err := h.exerciseService.GetUserExercises(ctx, userID)
	if err != nil {
		utils.LogError("ExerciseHandler", "Ошибка получения упражнений", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Failed to fetch exercises"})
		return
	}

	// Пустой список отдаём как [], а не null
	if exercises == nil {
		exercises = []models.Exercise{}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(exercises)
}

// CreateExercise обрабатывает POST /api/exercises
func (h *ExerciseHandler) CreateExercise(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("user_id").(string)
	if !ok {
		utils.LogError("ExerciseHandler", "user_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	var req models.CreateExerciseRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("ExerciseHandler", "Ошибка парсинга JSON", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Name) == "" || req.Reps <= 0 {
		utils.LogWarning("ExerciseHandler", "Неверные поля упражнения (name: %q, reps: %d)", req.Name, req.Reps)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Name and positive reps are required"})
		return
	}

	exercise, err := h.exerciseService.CreateExercise(ctx, userID, req.Name, req.Reps)
	if err != nil {
		utils.LogError("ExerciseHandler", "Ошибка создания упражнения", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Failed to add exercise"})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusCreated)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(exercise)
}

// DeleteExercise обрабатывает DELETE /api/exercises/{id}.
// Чужое или несуществующее упражнение дают одинаковый 404.
func (h *ExerciseHandler) DeleteExercise(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("user_id").(string)
	if !ok {
		utils.LogError("ExerciseHandler", "user_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	exerciseID, _ := ctx.UserValue("id").(string)

	exercise, err := h.exerciseService.DeleteExercise(ctx, exerciseID, userID)
	if err != nil {
		if err == repository.ErrExerciseNotFound {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Exercise not found"})
			return
		}
		utils.LogError("ExerciseHandler", "Ошибка удаления упражнения", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Failed to delete exercise"})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(models.DeleteExerciseResponse{
		Message:  "Exercise deleted",
		Exercise: *exercise,
	})
}

// GetStats обрабатывает GET /api/stats - агрегаты по упражнениям пользователя
func (h *ExerciseHandler) GetStats(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue("user_id").(string)
	if !ok {
		utils.LogError("ExerciseHandler", "user_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	stats, err := h.exerciseService.GetStats(ctx, userID)
	if err != nil {
		utils.LogError("ExerciseHandler", "Ошибка получения статистики", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Failed to fetch statistics"})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(stats)
}
