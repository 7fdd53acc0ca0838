package fitness

import "github.com/mireo/fitvault/internal/model"

// Projection computes the scalar a record category compares sets by.
// Returns nil when the set lacks the fields the category needs. The
// pace projection is distance-normalized duration, kept as in the
// original tracking behavior.
func Projection(stat model.SetStatistic, lot model.PersonalBestLot) *float64 {
	switch lot {
	case model.PersonalBestWeight:
		return stat.Weight
	case model.PersonalBestTime:
		return stat.Duration
	case model.PersonalBestReps:
		if stat.Reps == nil {
			return nil
		}
		v := float64(*stat.Reps)
		return &v
	case model.PersonalBestVolume:
		if stat.Reps == nil || stat.Weight == nil {
			return nil
		}
		v := float64(*stat.Reps) * *stat.Weight
		return &v
	case model.PersonalBestOneRm:
		if stat.Reps == nil || stat.Weight == nil {
			return nil
		}
		// Epley estimate.
		v := *stat.Weight * (1 + float64(*stat.Reps)/30)
		return &v
	case model.PersonalBestPace:
		if stat.Duration == nil || stat.Distance == nil || *stat.Distance == 0 {
			return nil
		}
		v := *stat.Duration / *stat.Distance
		return &v
	}
	return nil
}

// IsNewRecord reports whether candidate supersedes incumbent for the
// given category. An absent incumbent always loses; an absent candidate
// never wins; exact ties keep the incumbent.
func IsNewRecord(candidate, incumbent model.SetStatistic, lot model.PersonalBestLot) bool {
	cand := Projection(candidate, lot)
	if cand == nil {
		return false
	}
	inc := Projection(incumbent, lot)
	if inc == nil {
		return true
	}
	return *cand > *inc
}

// HighestProjectionIndex returns the index of the set with the greatest
// projection for the category, or -1 for an empty slice. Sets with an
// absent projection sort below every present one; among equals the
// earliest set wins.
func HighestProjectionIndex(sets []model.SetRecord, lot model.PersonalBestLot) int {
	best := -1
	var bestVal *float64
	for i, set := range sets {
		val := Projection(set.Statistic, lot)
		if best == -1 {
			best, bestVal = i, val
			continue
		}
		if val == nil {
			continue
		}
		if bestVal == nil || *val > *bestVal {
			best, bestVal = i, val
		}
	}
	return best
}

// BestSetIndex picks the set shown as "best" in the workout summary:
// the arg-max of the plain sum of whichever measurements are present.
// This is a display heuristic over mixed units and is deliberately kept
// apart from per-category record evaluation.
func BestSetIndex(sets []model.SetRecord) int {
	best := -1
	bestSum := 0.0
	for i, set := range sets {
		sum := 0.0
		if set.Statistic.Duration != nil {
			sum += *set.Statistic.Duration
		}
		if set.Statistic.Distance != nil {
			sum += *set.Statistic.Distance
		}
		if set.Statistic.Reps != nil {
			sum += float64(*set.Statistic.Reps)
		}
		if set.Statistic.Weight != nil {
			sum += *set.Statistic.Weight
		}
		if best == -1 || sum > bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}
