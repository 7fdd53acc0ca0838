package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/repo"
	"github.com/mireo/fitvault/internal/service"
	"github.com/mireo/fitvault/test/testutil"
)

const (
	wsUserID     = "ws-user-1"
	wsExerciseID = "ws-exercise-bench"
)

func setupWorkoutService(t *testing.T, db *sql.DB) *service.WorkoutService {
	t.Helper()
	ctx := context.Background()
	for _, query := range []string{
		`DELETE FROM workouts WHERE user_id = $1`,
		`DELETE FROM user_to_entity WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	} {
		_, _ = db.ExecContext(ctx, query, wsUserID)
	}
	_, _ = db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, wsExerciseID)

	users := repo.NewUserRepo(db)
	exercises := repo.NewExerciseRepo(db)
	now := time.Now().Unix()
	require.NoError(t, users.Create(ctx, &model.User{ID: wsUserID, Name: "tester", Ctime: now, Mtime: now}))
	require.NoError(t, exercises.Create(ctx, &model.Exercise{
		ID: wsExerciseID, Name: "Bench Press", Lot: model.ExerciseLotRepsAndWeight, Ctime: now, Mtime: now,
	}))
	return service.NewWorkoutService(exercises, repo.NewAssociationRepo(db), repo.NewWorkoutRepo(db), users)
}

func benchWorkout(name string, reps int, weight float64) model.WorkoutInput {
	start := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	return model.WorkoutInput{
		Name:      name,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Exercises: []model.WorkoutExerciseInput{
			{
				ExerciseID: wsExerciseID,
				Sets: []model.WorkoutSetInput{
					{
						Statistic: model.SetStatistic{Reps: &reps, Weight: &weight},
						Lot:       model.SetLotNormal,
					},
				},
			},
		},
		Supersets: [][]int{},
		Assets:    []string{},
	}
}

func TestCommitFirstWorkoutSetsAllRecordCategories(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	workouts := setupWorkoutService(t, db)

	workoutID, err := workouts.Commit(ctx, wsUserID, benchWorkout("Push Day", 10, 50))
	require.NoError(t, err)

	workout, err := workouts.Get(ctx, wsUserID, workoutID)
	require.NoError(t, err)
	require.Equal(t, 4, workout.Summary.Total.PersonalBestsAchieved)
	require.Equal(t, 10, workout.Summary.Total.Reps)
	require.InDelta(t, 500, workout.Summary.Total.Weight, 1e-9)
	require.Len(t, workout.Information.Exercises, 1)
	set := workout.Information.Exercises[0].Sets[0]
	require.ElementsMatch(t, []model.PersonalBestLot{
		model.PersonalBestWeight,
		model.PersonalBestOneRm,
		model.PersonalBestVolume,
		model.PersonalBestReps,
	}, set.PersonalBests)

	assoc, err := repo.NewAssociationRepo(db).GetByExercise(ctx, wsUserID, wsExerciseID)
	require.NoError(t, err)
	require.Equal(t, 1, assoc.NumTimesInteracted)
	require.Len(t, assoc.ExerciseInformation.History, 1)
	require.Equal(t, workoutID, assoc.ExerciseInformation.History[0].WorkoutID)
	require.Len(t, assoc.ExerciseInformation.PersonalBests, 4)
}

func TestCommitExactTieKeepsIncumbentRecords(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	workouts := setupWorkoutService(t, db)

	firstID, err := workouts.Commit(ctx, wsUserID, benchWorkout("Push Day", 10, 50))
	require.NoError(t, err)
	secondID, err := workouts.Commit(ctx, wsUserID, benchWorkout("Push Day 2", 10, 50))
	require.NoError(t, err)

	second, err := workouts.Get(ctx, wsUserID, secondID)
	require.NoError(t, err)
	require.Equal(t, 0, second.Summary.Total.PersonalBestsAchieved)

	assoc, err := repo.NewAssociationRepo(db).GetByExercise(ctx, wsUserID, wsExerciseID)
	require.NoError(t, err)
	require.Equal(t, 2, assoc.NumTimesInteracted)
	require.Len(t, assoc.ExerciseInformation.History, 2)
	require.Equal(t, secondID, assoc.ExerciseInformation.History[0].WorkoutID)
	require.Equal(t, firstID, assoc.ExerciseInformation.History[1].WorkoutID)
	require.Equal(t, 20, assoc.ExerciseInformation.LifetimeStats.Reps)
	for _, table := range assoc.ExerciseInformation.PersonalBests {
		require.Len(t, table.Sets, 1, "category %s", table.Lot)
		require.Equal(t, firstID, table.Sets[0].WorkoutID)
	}
}

func TestCommitRejectsInvalidInputWithoutWriting(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	workouts := setupWorkoutService(t, db)

	_, err := workouts.Commit(ctx, wsUserID, model.WorkoutInput{Name: "empty"})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	noSets := benchWorkout("no sets", 10, 50)
	noSets.Exercises[0].Sets = nil
	_, err = workouts.Commit(ctx, wsUserID, noSets)
	require.ErrorIs(t, err, appErr.ErrInvalid)

	listed, err := workouts.List(ctx, wsUserID)
	require.NoError(t, err)
	require.Empty(t, listed)
	_, err = repo.NewAssociationRepo(db).GetByExercise(ctx, wsUserID, wsExerciseID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestDeleteUnwindsHistoryButKeepsRecords(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	workouts := setupWorkoutService(t, db)

	firstID, err := workouts.Commit(ctx, wsUserID, benchWorkout("Push Day", 10, 50))
	require.NoError(t, err)
	secondID, err := workouts.Commit(ctx, wsUserID, benchWorkout("Push Day 2", 12, 55))
	require.NoError(t, err)

	require.NoError(t, workouts.Delete(ctx, wsUserID, secondID))

	assoc, err := repo.NewAssociationRepo(db).GetByExercise(ctx, wsUserID, wsExerciseID)
	require.NoError(t, err)
	require.Equal(t, 1, assoc.NumTimesInteracted)
	require.Len(t, assoc.ExerciseInformation.History, 1)
	require.Equal(t, firstID, assoc.ExerciseInformation.History[0].WorkoutID)
	// Lifetime totals and record tables still include the deleted
	// workout's contribution.
	require.Equal(t, 22, assoc.ExerciseInformation.LifetimeStats.Reps)
	for _, table := range assoc.ExerciseInformation.PersonalBests {
		require.Equal(t, secondID, table.Sets[0].WorkoutID, "category %s", table.Lot)
	}
}
