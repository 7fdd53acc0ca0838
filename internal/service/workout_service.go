package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/fitness"
	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/repo"
)

// WorkoutService commits workouts and maintains the per-exercise
// aggregate state that hangs off user/exercise associations: the
// interaction counter, bounded appearance history, lifetime totals and
// the personal-record tables.
type WorkoutService struct {
	exercises    *repo.ExerciseRepo
	associations *repo.AssociationRepo
	workouts     *repo.WorkoutRepo
	users        *repo.UserRepo
}

func NewWorkoutService(exercises *repo.ExerciseRepo, associations *repo.AssociationRepo, workouts *repo.WorkoutRepo, users *repo.UserRepo) *WorkoutService {
	return &WorkoutService{
		exercises:    exercises,
		associations: associations,
		workouts:     workouts,
		users:        users,
	}
}

// Commit validates, processes and persists one workout, returning its
// id. Validation covers the whole input up front so a rejected workout
// leaves no partial rows behind. Processing is not transactional across
// exercises: a storage failure partway through leaves earlier
// associations updated without the workout row, an accepted limitation
// of the single-store design.
func (s *WorkoutService) Commit(ctx context.Context, userID string, input model.WorkoutInput) (string, error) {
	if len(input.Exercises) == 0 {
		return "", fmt.Errorf("%w: workout has no exercises", appErr.ErrInvalid)
	}
	for _, exercise := range input.Exercises {
		if len(exercise.Sets) == 0 {
			return "", fmt.Errorf("%w: exercise %s has no sets", appErr.ErrInvalid, exercise.ExerciseID)
		}
	}
	prefs, err := s.users.Preferences(ctx, userID)
	if err != nil {
		return "", err
	}
	workoutID := newID()
	logger := logutil.GetLogger(ctx).With(zap.String("user_id", userID), zap.String("workout_id", workoutID))

	processed := make([]model.ProcessedExercise, 0, len(input.Exercises))
	summaryExercises := make([]model.WorkoutSummaryExercise, 0, len(input.Exercises))
	var grandTotal model.WorkoutTotals
	for idx := range input.Exercises {
		exerciseInput := &input.Exercises[idx]
		exercise, err := s.exercises.GetByID(ctx, exerciseInput.ExerciseID)
		if err != nil {
			if appErr.IsNotFound(err) {
				logger.Error("exercise not found, skipping", zap.String("exercise_id", exerciseInput.ExerciseID))
				continue
			}
			return "", err
		}
		assoc, err := s.upsertAssociation(ctx, userID, exercise.ID, workoutID, idx, prefs.SaveHistory)
		if err != nil {
			return "", err
		}

		sets := make([]model.SetRecord, 0, len(exerciseInput.Sets))
		var total model.WorkoutTotals
		for i := range exerciseInput.Sets {
			set := &exerciseInput.Sets[i]
			fitness.NormalizeUnits(set, prefs.UnitSystem)
			statistic := fitness.SanitizeStatistic(set.Statistic, exercise.Lot)
			if statistic.Reps != nil {
				total.Reps += *statistic.Reps
				if statistic.Weight != nil {
					total.Weight += *statistic.Weight * float64(*statistic.Reps)
				}
			}
			if statistic.Duration != nil {
				total.Duration += *statistic.Duration
			}
			if statistic.Distance != nil {
				total.Distance += *statistic.Distance
			}
			sets = append(sets, model.SetRecord{
				Statistic:     statistic,
				Lot:           set.Lot,
				PersonalBests: []model.PersonalBestLot{},
			})
		}

		tables := assoc.ExerciseInformation.PersonalBests
		for _, pbLot := range exercise.Lot.PersonalBestLots() {
			setIdx := fitness.HighestProjectionIndex(sets, pbLot)
			if setIdx < 0 {
				continue
			}
			incumbent := topStoredRecord(tables, pbLot)
			achieved := incumbent == nil ||
				fitness.IsNewRecord(sets[setIdx].Statistic, incumbent.Data.Statistic, pbLot)
			if achieved {
				sets[setIdx].PersonalBests = append(sets[setIdx].PersonalBests, pbLot)
				total.PersonalBestsAchieved += 1
			}
		}
		for setIdx := range sets {
			for _, pbLot := range sets[setIdx].PersonalBests {
				record := model.BestSetRecord{
					WorkoutID: workoutID,
					SetIdx:    setIdx,
					Data:      sets[setIdx],
				}
				tables = pushBestSet(tables, pbLot, record, prefs.SaveHistory)
			}
		}

		assoc.ExerciseInformation.LifetimeStats.Add(total)
		assoc.ExerciseInformation.PersonalBests = tables
		assoc.LastUpdatedOn = time.Now().Unix()
		if err := s.associations.Update(ctx, assoc); err != nil {
			return "", err
		}

		processed = append(processed, model.ProcessedExercise{
			ExerciseID: exercise.ID,
			Name:       exercise.Name,
			Lot:        exercise.Lot,
			Sets:       sets,
			Notes:      exerciseInput.Notes,
			RestTime:   exerciseInput.RestTime,
			Assets:     exerciseInput.Assets,
			Total:      total,
		})
		summaryExercises = append(summaryExercises, model.WorkoutSummaryExercise{
			Name:    exercise.Name,
			Lot:     exercise.Lot,
			NumSets: len(sets),
			BestSet: sets[fitness.BestSetIndex(sets)],
		})
		grandTotal.Add(total)
	}

	workout := &model.Workout{
		ID:        workoutID,
		UserID:    userID,
		Name:      input.Name,
		Comment:   input.Comment,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Summary: model.WorkoutSummary{
			Total:     grandTotal,
			Exercises: summaryExercises,
		},
		Information: model.WorkoutInformation{
			Supersets: input.Supersets,
			Assets:    input.Assets,
			Exercises: processed,
		},
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return "", err
	}
	logger.Info("workout committed",
		zap.Int("exercises", len(processed)),
		zap.Int("personal_bests", grandTotal.PersonalBestsAchieved))
	return workoutID, nil
}

// upsertAssociation loads or creates the user/exercise association and
// records this workout's appearance in its bounded history.
func (s *WorkoutService) upsertAssociation(ctx context.Context, userID, exerciseID, workoutID string, idx, saveHistory int) (*model.Association, error) {
	historyItem := model.ExerciseHistoryItem{WorkoutID: workoutID, Idx: idx}
	assoc, err := s.associations.GetByExercise(ctx, userID, exerciseID)
	if err == nil {
		assoc.NumTimesInteracted += 1
		assoc.ExerciseInformation.History = fitness.PushFront(assoc.ExerciseInformation.History, historyItem, saveHistory)
		return assoc, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	assoc = &model.Association{
		ID:                 newID(),
		UserID:             userID,
		ExerciseID:         &exerciseID,
		NumTimesInteracted: 1,
		LastUpdatedOn:      time.Now().Unix(),
		ExerciseInformation: &model.ExerciseExtra{
			History:       []model.ExerciseHistoryItem{historyItem},
			LifetimeStats: model.WorkoutTotals{},
			PersonalBests: []model.PersonalBestTable{},
		},
	}
	if err := s.associations.Create(ctx, assoc); err != nil {
		return nil, err
	}
	return assoc, nil
}

// Get returns one workout with full detail.
func (s *WorkoutService) Get(ctx context.Context, userID, workoutID string) (*model.Workout, error) {
	return s.workouts.GetByID(ctx, userID, workoutID)
}

// List returns a user's workouts, newest first.
func (s *WorkoutService) List(ctx context.Context, userID string) ([]model.Workout, error) {
	return s.workouts.List(ctx, userID)
}

// Delete removes a workout and unwinds its appearance from each
// affected association: the interaction counter drops by one and the
// matching history entry disappears. Lifetime totals and record tables
// are intentionally left as they are, even when the deleted workout
// still holds a referenced record.
func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID string) error {
	workout, err := s.workouts.GetByID(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	for idx := range workout.Information.Exercises {
		exercise := &workout.Information.Exercises[idx]
		assoc, err := s.associations.GetByExercise(ctx, userID, exercise.ExerciseID)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return err
		}
		assoc.NumTimesInteracted -= 1
		history := assoc.ExerciseInformation.History
		for i, item := range history {
			if item.WorkoutID == workoutID && item.Idx == idx {
				assoc.ExerciseInformation.History = append(history[:i:i], history[i+1:]...)
				break
			}
		}
		assoc.LastUpdatedOn = time.Now().Unix()
		if err := s.associations.Update(ctx, assoc); err != nil {
			return err
		}
	}
	return s.workouts.Delete(ctx, userID, workoutID)
}

// topStoredRecord returns the current best stored record for a
// category, or nil when none exists. Tables are most-recent-first, and
// a record only enters a table by beating the previous top, so the
// first entry is the reigning one.
func topStoredRecord(tables []model.PersonalBestTable, lot model.PersonalBestLot) *model.BestSetRecord {
	for i := range tables {
		if tables[i].Lot == lot && len(tables[i].Sets) > 0 {
			return &tables[i].Sets[0]
		}
	}
	return nil
}

func pushBestSet(tables []model.PersonalBestTable, lot model.PersonalBestLot, record model.BestSetRecord, capacity int) []model.PersonalBestTable {
	for i := range tables {
		if tables[i].Lot == lot {
			tables[i].Sets = fitness.PushFront(tables[i].Sets, record, capacity)
			return tables
		}
	}
	return append(tables, model.PersonalBestTable{
		Lot:  lot,
		Sets: []model.BestSetRecord{record},
	})
}
