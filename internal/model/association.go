package model

// ExerciseHistoryItem records one appearance of an exercise inside a
// workout, identified by the workout id and the exercise's position in
// it.
type ExerciseHistoryItem struct {
	WorkoutID string `json:"workout_id"`
	Idx       int    `json:"idx"`
}

// BestSetRecord is a set that achieved a record, tagged with where it
// happened so it can be displayed and cross-referenced later.
type BestSetRecord struct {
	WorkoutID string    `json:"workout_id"`
	SetIdx    int       `json:"set_idx"`
	Data      SetRecord `json:"data"`
}

// PersonalBestTable is the retained record list for one category,
// most recent first, bounded by the user's history preference.
type PersonalBestTable struct {
	Lot  PersonalBestLot `json:"lot"`
	Sets []BestSetRecord `json:"sets"`
}

// ExerciseExtra is the JSON payload stored on a user/exercise
// association row.
type ExerciseExtra struct {
	History       []ExerciseHistoryItem `json:"history"`
	LifetimeStats WorkoutTotals         `json:"lifetime_stats"`
	PersonalBests []PersonalBestTable   `json:"personal_bests"`
}

// Association is one user-to-entity row. Exactly one of ExerciseID and
// MetadataID is set. ExerciseExtra is only present for exercise rows.
type Association struct {
	ID                  string
	UserID              string
	ExerciseID          *string
	MetadataID          *string
	NumTimesInteracted  int
	LastUpdatedOn       int64
	ExerciseInformation *ExerciseExtra
}
