package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/repo"
	"github.com/mireo/fitvault/test/testutil"
)

func TestWorkoutRepoCRUDAndIsolation(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM workouts WHERE user_id IN ('wr-user-1', 'wr-user-2')`)

	workouts := repo.NewWorkoutRepo(db)
	comment := "solid session"
	start := time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)
	workout := &model.Workout{
		ID:        "wr-workout-1",
		UserID:    "wr-user-1",
		Name:      "Push Day",
		Comment:   &comment,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Summary: model.WorkoutSummary{
			Total: model.WorkoutTotals{Reps: 24, Weight: 1440},
			Exercises: []model.WorkoutSummaryExercise{
				{Name: "Bench Press", Lot: model.ExerciseLotRepsAndWeight, NumSets: 3},
			},
		},
		Information: model.WorkoutInformation{
			Supersets: [][]int{},
			Assets:    []string{},
		},
	}
	require.NoError(t, workouts.Create(ctx, workout))

	fetched, err := workouts.GetByID(ctx, "wr-user-1", "wr-workout-1")
	require.NoError(t, err)
	require.Equal(t, "Push Day", fetched.Name)
	require.NotNil(t, fetched.Comment)
	require.Equal(t, comment, *fetched.Comment)
	require.Equal(t, start, fetched.StartTime)
	require.Equal(t, 24, fetched.Summary.Total.Reps)
	require.Len(t, fetched.Summary.Exercises, 1)

	_, err = workouts.GetByID(ctx, "wr-user-2", "wr-workout-1")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	later := &model.Workout{
		ID:        "wr-workout-2",
		UserID:    "wr-user-1",
		Name:      "Pull Day",
		StartTime: start.Add(48 * time.Hour),
		EndTime:   start.Add(49 * time.Hour),
	}
	require.NoError(t, workouts.Create(ctx, later))

	listed, err := workouts.List(ctx, "wr-user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "wr-workout-2", listed[0].ID)
	require.Equal(t, "wr-workout-1", listed[1].ID)

	require.NoError(t, workouts.Delete(ctx, "wr-user-1", "wr-workout-1"))
	_, err = workouts.GetByID(ctx, "wr-user-1", "wr-workout-1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, workouts.Delete(ctx, "wr-user-1", "wr-workout-1"), appErr.ErrNotFound)

	require.NoError(t, workouts.Delete(ctx, "wr-user-1", "wr-workout-2"))
}
