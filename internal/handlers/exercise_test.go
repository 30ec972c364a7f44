package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/models"
	"fitness-tracker/internal/services"
)

func newExerciseHandler() (*ExerciseHandler, *fakeExerciseRepository) {
	repo := newFakeExerciseRepository()
	return NewExerciseHandler(services.NewExerciseService(repo)), repo
}

func createExercise(t *testing.T, h *ExerciseHandler, userID, name string, reps int) models.Exercise {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"reps":%d}`, name, reps)
	ctx := newAuthedCtx(fasthttp.MethodPost, "/api/exercises", body, userID)
	h.CreateExercise(ctx)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	var exercise models.Exercise
	decodeBody(t, ctx, &exercise)
	return exercise
}

func listExercises(t *testing.T, h *ExerciseHandler, userID string) []models.Exercise {
	t.Helper()

	ctx := newAuthedCtx(fasthttp.MethodGet, "/api/exercises", "", userID)
	h.ListExercises(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var exercises []models.Exercise
	decodeBody(t, ctx, &exercises)
	return exercises
}

func TestCreateExercise_RoundTrip(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()

	exercise := createExercise(t, h, "user-a", "Push-ups", 15)

	assert.Equal(t, "Push-ups", exercise.Name)
	assert.Equal(t, 15, exercise.Reps)
	assert.Equal(t, "user-a", exercise.UserID)
	assert.NotEmpty(t, exercise.ID)
	assert.False(t, exercise.CreatedAt.IsZero())
}

func TestCreateExercise_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing name", `{"reps":10}`},
		{"blank name", `{"name":"   ","reps":10}`},
		{"missing reps", `{"name":"Squats"}`},
		{"zero reps", `{"name":"Squats","reps":0}`},
		{"negative reps", `{"name":"Squats","reps":-3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newExerciseHandler()
			ctx := newAuthedCtx(fasthttp.MethodPost, "/api/exercises", tt.body, "user-a")
			h.CreateExercise(ctx)
			assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		})
	}
}

func TestListExercises_Empty(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()

	ctx := newAuthedCtx(fasthttp.MethodGet, "/api/exercises", "", "user-a")
	h.ListExercises(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `[]`, string(ctx.Response.Body()))
}

func TestListExercises_NewestFirst(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()
	createExercise(t, h, "user-a", "Push-ups", 15)
	createExercise(t, h, "user-a", "Squats", 20)
	createExercise(t, h, "user-a", "Pull-ups", 5)

	exercises := listExercises(t, h, "user-a")

	require.Len(t, exercises, 3)
	assert.Equal(t, "Pull-ups", exercises[0].Name)
	assert.Equal(t, "Squats", exercises[1].Name)
	assert.Equal(t, "Push-ups", exercises[2].Name)
	assert.True(t, exercises[0].CreatedAt.After(exercises[1].CreatedAt))
	assert.True(t, exercises[1].CreatedAt.After(exercises[2].CreatedAt))
}

func TestListExercises_ScopedToOwner(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()
	created := createExercise(t, h, "user-a", "Push-ups", 15)

	// Созданное упражнение сразу видно владельцу
	ownerList := listExercises(t, h, "user-a")
	require.Len(t, ownerList, 1)
	assert.Equal(t, created.ID, ownerList[0].ID)

	// И не видно другому пользователю
	otherList := listExercises(t, h, "user-b")
	assert.Empty(t, otherList)
}

func TestDeleteExercise_Success(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()
	created := createExercise(t, h, "user-a", "Push-ups", 15)

	ctx := newAuthedCtx(fasthttp.MethodDelete, "/api/exercises/"+created.ID, "", "user-a")
	ctx.SetUserValue("id", created.ID)
	h.DeleteExercise(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp models.DeleteExerciseResponse
	decodeBody(t, ctx, &resp)
	assert.Equal(t, "Exercise deleted", resp.Message)
	assert.Equal(t, created.ID, resp.Exercise.ID)

	assert.Empty(t, listExercises(t, h, "user-a"))
}

func TestDeleteExercise_WrongOwnerIndistinguishableFromMissing(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()
	created := createExercise(t, h, "user-a", "Push-ups", 15)

	foreign := newAuthedCtx(fasthttp.MethodDelete, "/api/exercises/"+created.ID, "", "user-b")
	foreign.SetUserValue("id", created.ID)
	h.DeleteExercise(foreign)

	missing := newAuthedCtx(fasthttp.MethodDelete, "/api/exercises/no-such-id", "", "user-b")
	missing.SetUserValue("id", "no-such-id")
	h.DeleteExercise(missing)

	assert.Equal(t, fasthttp.StatusNotFound, foreign.Response.StatusCode())
	assert.Equal(t, fasthttp.StatusNotFound, missing.Response.StatusCode())
	assert.Equal(t, string(missing.Response.Body()), string(foreign.Response.Body()))

	// Упражнение владельца не пострадало
	ownerList := listExercises(t, h, "user-a")
	require.Len(t, ownerList, 1)
	assert.Equal(t, created.ID, ownerList[0].ID)
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()
	for i, reps := range []int{10, 20, 30} {
		createExercise(t, h, "user-a", fmt.Sprintf("Exercise %d", i+1), reps)
	}
	createExercise(t, h, "user-b", "Squats", 100)

	ctx := newAuthedCtx(fasthttp.MethodGet, "/api/stats", "", "user-a")
	h.GetStats(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var stats models.Stats
	decodeBody(t, ctx, &stats)
	assert.Equal(t, 3, stats.TotalExercises)
	assert.Equal(t, 60, stats.TotalReps)
	require.NotNil(t, stats.AvgReps)
	assert.InDelta(t, 20.0, *stats.AvgReps, 0.001)
}

func TestGetStats_ZeroExercises(t *testing.T) {
	t.Parallel()

	h, _ := newExerciseHandler()

	ctx := newAuthedCtx(fasthttp.MethodGet, "/api/stats", "", "user-a")
	h.GetStats(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	// avg_reps канонически null при нуле упражнений
	assert.JSONEq(t, `{"total_exercises":0,"total_reps":0,"avg_reps":null}`, string(ctx.Response.Body()))
}

// Проверка, что фейковый репозиторий удовлетворяет контракту удаления
func TestFakeRepositoryDeleteContract(t *testing.T) {
	t.Parallel()

	repo := newFakeExerciseRepository()
	exercise := &models.Exercise{UserID: "user-a", Name: "Push-ups", Reps: 15}
	require.NoError(t, repo.Create(context.Background(), exercise))

	_, err := repo.Delete(context.Background(), exercise.ID, "user-b")
	assert.Error(t, err)

	deleted, err := repo.Delete(context.Background(), exercise.ID, "user-a")
	require.NoError(t, err)
	assert.Equal(t, exercise.ID, deleted.ID)
}
