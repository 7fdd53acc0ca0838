package model

import "time"

// SetLot classifies a performed set.
type SetLot string

const (
	SetLotNormal  SetLot = "normal"
	SetLotWarmUp  SetLot = "warm_up"
	SetLotDrop    SetLot = "drop"
	SetLotFailure SetLot = "failure"
)

// SetStatistic holds the raw measurements of one set. Duration is in
// minutes, distance in kilometers, weight in kilograms. Only the fields
// valid for the exercise lot survive sanitization.
type SetStatistic struct {
	Duration *float64 `json:"duration,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Reps     *int     `json:"reps,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// SetRecord is a persisted set together with the record categories it
// achieved when the workout was committed.
type SetRecord struct {
	Statistic     SetStatistic      `json:"statistic"`
	Lot           SetLot            `json:"lot"`
	PersonalBests []PersonalBestLot `json:"personal_bests"`
}

// WorkoutSetInput is one set as submitted by the user or an importer.
type WorkoutSetInput struct {
	Statistic SetStatistic `json:"statistic"`
	Lot       SetLot       `json:"lot"`
}

// WorkoutExerciseInput groups the sets performed for one exercise.
type WorkoutExerciseInput struct {
	ExerciseID string            `json:"exercise_id"`
	Sets       []WorkoutSetInput `json:"sets"`
	Notes      []string          `json:"notes"`
	RestTime   *int              `json:"rest_time,omitempty"`
	Assets     []string          `json:"assets"`
}

// WorkoutInput is the commit payload for a whole workout.
type WorkoutInput struct {
	Name      string                 `json:"name"`
	Comment   *string                `json:"comment,omitempty"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Exercises []WorkoutExerciseInput `json:"exercises"`
	Supersets [][]int                `json:"supersets"`
	Assets    []string               `json:"assets"`
}

// WorkoutTotals accumulates measurements across the sets of one
// exercise, or across a whole workout.
type WorkoutTotals struct {
	PersonalBestsAchieved int     `json:"personal_bests_achieved"`
	Reps                  int     `json:"reps"`
	Weight                float64 `json:"weight"`
	Duration              float64 `json:"duration"`
	Distance              float64 `json:"distance"`
}

// Add sums another total into the receiver.
func (t *WorkoutTotals) Add(other WorkoutTotals) {
	t.PersonalBestsAchieved += other.PersonalBestsAchieved
	t.Reps += other.Reps
	t.Weight += other.Weight
	t.Duration += other.Duration
	t.Distance += other.Distance
}

// ProcessedExercise is the stored form of one exercise within a
// workout, after normalization and record evaluation.
type ProcessedExercise struct {
	ExerciseID string        `json:"exercise_id"`
	Name       string        `json:"name"`
	Lot        ExerciseLot   `json:"lot"`
	Sets       []SetRecord   `json:"sets"`
	Notes      []string      `json:"notes"`
	RestTime   *int          `json:"rest_time,omitempty"`
	Assets     []string      `json:"assets"`
	Total      WorkoutTotals `json:"total"`
}

// WorkoutSummaryExercise is the per-exercise rollup shown in listings.
// BestSet is picked by a display heuristic, not by record evaluation.
type WorkoutSummaryExercise struct {
	Name    string      `json:"name"`
	Lot     ExerciseLot `json:"lot"`
	NumSets int         `json:"num_sets"`
	BestSet SetRecord   `json:"best_set"`
}

type WorkoutSummary struct {
	Total     WorkoutTotals            `json:"total"`
	Exercises []WorkoutSummaryExercise `json:"exercises"`
}

// WorkoutInformation is the full stored detail of a workout.
type WorkoutInformation struct {
	Supersets [][]int             `json:"supersets"`
	Assets    []string            `json:"assets"`
	Exercises []ProcessedExercise `json:"exercises"`
}

// Workout is one committed workout row. Summary and Information are
// stored as JSON columns.
type Workout struct {
	ID          string
	UserID      string
	Name        string
	Comment     *string
	StartTime   time.Time
	EndTime     time.Time
	Summary     WorkoutSummary
	Information WorkoutInformation
}
