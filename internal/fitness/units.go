// Package fitness holds the pure calculation core of the workout
// engine: unit conversion, statistic sanitization, personal-record
// evaluation and the bounded history lists kept on user/exercise
// associations.
package fitness

import "github.com/mireo/fitvault/internal/model"

const (
	lbToKg = 0.45359
	miToKm = 1.60934
)

// NormalizeUnits converts a set's measurements into the canonical
// metric system in place. Metric input passes through untouched.
// The conversion is not idempotent for imperial input; callers must
// apply it exactly once per raw set.
func NormalizeUnits(set *model.WorkoutSetInput, unit model.UnitSystem) {
	if unit != model.UnitSystemImperial {
		return
	}
	if set.Statistic.Weight != nil {
		*set.Statistic.Weight *= lbToKg
	}
	if set.Statistic.Distance != nil {
		*set.Statistic.Distance *= miToKm
	}
}

// SanitizeStatistic returns a statistic containing only the fields
// valid for the exercise lot; everything else is dropped. Must run
// after NormalizeUnits so conversions apply to the raw input.
func SanitizeStatistic(stat model.SetStatistic, lot model.ExerciseLot) model.SetStatistic {
	out := model.SetStatistic{}
	switch lot {
	case model.ExerciseLotDuration:
		out.Duration = stat.Duration
	case model.ExerciseLotDistanceAndDuration:
		out.Duration = stat.Duration
		out.Distance = stat.Distance
	case model.ExerciseLotRepsAndWeight:
		out.Reps = stat.Reps
		out.Weight = stat.Weight
	}
	return out
}
