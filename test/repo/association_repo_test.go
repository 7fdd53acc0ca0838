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

func TestAssociationRepoExerciseRoundTrip(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM user_to_entity WHERE user_id = 'ar-user-1'`)

	associations := repo.NewAssociationRepo(db)
	exerciseID := "ar-exercise-1"
	weight := 50.0
	assoc := &model.Association{
		ID:                 "ar-assoc-1",
		UserID:             "ar-user-1",
		ExerciseID:         &exerciseID,
		NumTimesInteracted: 1,
		LastUpdatedOn:      time.Now().Unix(),
		ExerciseInformation: &model.ExerciseExtra{
			History: []model.ExerciseHistoryItem{{WorkoutID: "w1", Idx: 0}},
			LifetimeStats: model.WorkoutTotals{
				Reps: 10, Weight: 500, PersonalBestsAchieved: 3,
			},
			PersonalBests: []model.PersonalBestTable{
				{
					Lot: model.PersonalBestWeight,
					Sets: []model.BestSetRecord{
						{
							WorkoutID: "w1",
							SetIdx:    0,
							Data: model.SetRecord{
								Statistic:     model.SetStatistic{Weight: &weight},
								Lot:           model.SetLotNormal,
								PersonalBests: []model.PersonalBestLot{model.PersonalBestWeight},
							},
						},
					},
				},
			},
		},
	}
	require.NoError(t, associations.Create(ctx, assoc))

	fetched, err := associations.GetByExercise(ctx, "ar-user-1", exerciseID)
	require.NoError(t, err)
	require.Equal(t, 1, fetched.NumTimesInteracted)
	require.NotNil(t, fetched.ExerciseInformation)
	require.Len(t, fetched.ExerciseInformation.History, 1)
	require.Len(t, fetched.ExerciseInformation.PersonalBests, 1)
	top := fetched.ExerciseInformation.PersonalBests[0].Sets[0]
	require.NotNil(t, top.Data.Statistic.Weight)
	require.Equal(t, weight, *top.Data.Statistic.Weight)

	fetched.NumTimesInteracted += 1
	fetched.ExerciseInformation.History = append([]model.ExerciseHistoryItem{{WorkoutID: "w2", Idx: 1}}, fetched.ExerciseInformation.History...)
	require.NoError(t, associations.Update(ctx, fetched))

	again, err := associations.GetByExercise(ctx, "ar-user-1", exerciseID)
	require.NoError(t, err)
	require.Equal(t, 2, again.NumTimesInteracted)
	require.Equal(t, "w2", again.ExerciseInformation.History[0].WorkoutID)

	dup := &model.Association{
		ID:            "ar-assoc-dup",
		UserID:        "ar-user-1",
		ExerciseID:    &exerciseID,
		LastUpdatedOn: time.Now().Unix(),
	}
	require.ErrorIs(t, associations.Create(ctx, dup), appErr.ErrConflict)

	_, err = associations.GetByMetadata(ctx, "ar-user-1", "missing-metadata")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, associations.Delete(ctx, "ar-user-1", "ar-assoc-1"))
}
