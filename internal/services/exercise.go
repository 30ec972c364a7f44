package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fitness-tracker/internal/cache"
	"fitness-tracker/internal/models"
	"fitness-tracker/internal/repository"
	"fitness-tracker/internal/utils"
)

type ExerciseService struct {
	exerciseRepo repository.ExerciseRepository
	cache        *cache.RedisCache
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		cache:        nil,
	}
}

func NewExerciseServiceWithCache(exerciseRepo repository.ExerciseRepository, cache *cache.RedisCache) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		cache:        cache,
	}
}

func (s *ExerciseService) CreateExercise(ctx context.Context, userID, name string, reps int) (*models.Exercise, error) {
	utils.LogInfo("ExerciseService", "Создание упражнения %q (%d повторений) для пользователя %s", name, reps, userID)

	exercise := &models.Exercise{
		UserID: userID,
		Name:   name,
		Reps:   reps,
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		utils.LogError("ExerciseService", fmt.Sprintf("Ошибка создания упражнения для пользователя %s", userID), err)
		return nil, err
	}

	s.invalidateUserCache(ctx, userID)

	utils.LogSuccess("ExerciseService", "Упражнение %s создано для пользователя %s", exercise.ID, userID)
	return exercise, nil
}

func (s *ExerciseService) GetUserExercises(ctx context.Context, userID string) ([]models.Exercise, error) {
	utils.LogInfo("ExerciseService", "Получение списка упражнений пользователя %s", userID)

	if s.cache != nil {
		cacheKey := cache.UserExercisesKey(userID)
		var exercises []models.Exercise

		err := s.cache.GetJSON(ctx, cacheKey, &exercises)
		if err == nil {
			utils.LogSuccess("Cache", "HIT: Список упражнений пользователя %s получен из кеша (%d шт.)", userID, len(exercises))
			return exercises, nil
		} else if err != redis.Nil {
			utils.LogWarning("Cache", "Ошибка чтения из кеша: %v", err)
		}
	}

	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		utils.LogError("ExerciseService", fmt.Sprintf("Ошибка получения упражнений пользователя %s", userID), err)
		return nil, err
	}

	if s.cache != nil {
		cacheKey := cache.UserExercisesKey(userID)
		if err := s.cache.SetJSON(ctx, cacheKey, exercises, cache.UserExercisesTTL); err != nil {
			utils.LogWarning("Cache", "Не удалось сохранить список в кеш: %v", err)
		}
	}

	utils.LogSuccess("ExerciseService", "Найдено упражнений для пользователя %s: %d", userID, len(exercises))
	return exercises, nil
}

// DeleteExercise удаляет упражнение с проверкой владельца.
// repository.ErrExerciseNotFound возвращается и для чужих, и для несуществующих ID.
func (s *ExerciseService) DeleteExercise(ctx context.Context, exerciseID, userID string) (*models.Exercise, error) {
	utils.LogInfo("ExerciseService", "Удаление упражнения %s пользователем %s", exerciseID, userID)

	exercise, err := s.exerciseRepo.Delete(ctx, exerciseID, userID)
	if err != nil {
		if err == repository.ErrExerciseNotFound {
			utils.LogWarning("ExerciseService", "Упражнение %s не найдено у пользователя %s", exerciseID, userID)
		} else {
			utils.LogError("ExerciseService", fmt.Sprintf("Ошибка удаления упражнения %s", exerciseID), err)
		}
		return nil, err
	}

	s.invalidateUserCache(ctx, userID)

	utils.LogSuccess("ExerciseService", "Упражнение %s удалено", exerciseID)
	return exercise, nil
}

func (s *ExerciseService) GetStats(ctx context.Context, userID string) (*models.Stats, error) {
	utils.LogInfo("ExerciseService", "Получение статистики пользователя %s", userID)

	if s.cache != nil {
		cacheKey := cache.UserStatsKey(userID)
		var stats models.Stats

		err := s.cache.GetJSON(ctx, cacheKey, &stats)
		if err == nil {
			utils.LogSuccess("Cache", "HIT: Статистика пользователя %s получена из кеша", userID)
			return &stats, nil
		} else if err != redis.Nil {
			utils.LogWarning("Cache", "Ошибка чтения из кеша: %v", err)
		}
	}

	stats, err := s.exerciseRepo.GetStats(ctx, userID)
	if err != nil {
		utils.LogError("ExerciseService", fmt.Sprintf("Ошибка получения статистики пользователя %s", userID), err)
		return nil, err
	}

	if s.cache != nil {
		cacheKey := cache.UserStatsKey(userID)
		if err := s.cache.SetJSON(ctx, cacheKey, stats, cache.UserStatsTTL); err != nil {
			utils.LogWarning("Cache", "Не удалось сохранить статистику в кеш: %v", err)
		}
	}

	utils.LogSuccess("ExerciseService", "Статистика пользователя %s: %d упражнений, %d повторений",
		userID, stats.TotalExercises, stats.TotalReps)
	return stats, nil
}

// invalidateUserCache сбрасывает кеш списка и статистики после записи,
// чтобы созданное упражнение было видно в следующем запросе списка
func (s *ExerciseService) invalidateUserCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx,
		cache.UserExercisesKey(userID),
		cache.UserStatsKey(userID),
	)
	utils.LogInfo("Cache", "Инвалидирован кеш пользователя %s", userID)
}
