package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/repository"
)

// fakeUserRepository - хранилище пользователей в памяти для тестов обработчиков
type fakeUserRepository struct {
	seq   int
	users map[string]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*models.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// fakeExerciseRepository - хранилище упражнений в памяти.
// CreatedAt растёт строго монотонно с порядком вставки.
type fakeExerciseRepository struct {
	seq       int
	base      time.Time
	exercises []models.Exercise
}

func newFakeExerciseRepository() *fakeExerciseRepository {
	return &fakeExerciseRepository{base: time.Now()}
}

func (r *fakeExerciseRepository) Create(_ context.Context, exercise *models.Exercise) error {
	r.seq++
	exercise.ID = fmt.Sprintf("exercise-%d", r.seq)
	exercise.CreatedAt = r.base.Add(time.Duration(r.seq) * time.Second)
	r.exercises = append(r.exercises, *exercise)
	return nil
}

func (r *fakeExerciseRepository) GetByUserID(_ context.Context, userID string) ([]models.Exercise, error) {
	var result []models.Exercise
	for i := len(r.exercises) - 1; i >= 0; i-- {
		if r.exercises[i].UserID == userID {
			result = append(result, r.exercises[i])
		}
	}
	return result, nil
}

func (r *fakeExerciseRepository) Delete(_ context.Context, exerciseID, userID string) (*models.Exercise, error) {
	for i, e := range r.exercises {
		if e.ID == exerciseID && e.UserID == userID {
			deleted := e
			r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, repository.ErrExerciseNotFound
}

func (r *fakeExerciseRepository) GetStats(_ context.Context, userID string) (*models.Stats, error) {
	stats := &models.Stats{}
	for _, e := range r.exercises {
		if e.UserID == userID {
			stats.TotalExercises++
			stats.TotalReps += e.Reps
		}
	}
	if stats.TotalExercises > 0 {
		avg := float64(stats.TotalReps) / float64(stats.TotalExercises)
		stats.AvgReps = &avg
	}
	return stats, nil
}

func newRequestCtx(method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	return ctx
}

func newAuthedCtx(method, uri, body, userID string) *fasthttp.RequestCtx {
	ctx := newRequestCtx(method, uri, body)
	ctx.SetUserValue("user_id", userID)
	return ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), dest))
}
