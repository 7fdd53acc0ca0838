package model

// ExerciseLot describes which measurement fields a set of an exercise
// can carry.
type ExerciseLot string

const (
	ExerciseLotDuration            ExerciseLot = "duration"
	ExerciseLotDistanceAndDuration ExerciseLot = "distance_and_duration"
	ExerciseLotRepsAndWeight       ExerciseLot = "reps_and_weight"
)

// PersonalBestLot is a category of personal record tracked per exercise.
type PersonalBestLot string

const (
	PersonalBestWeight PersonalBestLot = "weight"
	PersonalBestOneRm  PersonalBestLot = "one_rm"
	PersonalBestVolume PersonalBestLot = "volume"
	PersonalBestReps   PersonalBestLot = "reps"
	PersonalBestTime   PersonalBestLot = "time"
	PersonalBestPace   PersonalBestLot = "pace"
)

// PersonalBestLots returns the record categories applicable to an
// exercise lot.
func (l ExerciseLot) PersonalBestLots() []PersonalBestLot {
	switch l {
	case ExerciseLotDuration:
		return []PersonalBestLot{PersonalBestTime}
	case ExerciseLotDistanceAndDuration:
		return []PersonalBestLot{PersonalBestPace, PersonalBestTime}
	case ExerciseLotRepsAndWeight:
		return []PersonalBestLot{PersonalBestWeight, PersonalBestOneRm, PersonalBestVolume, PersonalBestReps}
	}
	return nil
}

type Exercise struct {
	ID    string
	Name  string
	Lot   ExerciseLot
	Ctime int64
	Mtime int64
}
