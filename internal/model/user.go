package model

// UnitSystem selects how submitted measurements are interpreted.
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// ReviewScale is the rating scale a user reads and writes reviews in.
// Stored ratings follow this scale.
type ReviewScale string

const (
	ReviewScaleOutOfFive    ReviewScale = "out_of_five"
	ReviewScaleOutOfHundred ReviewScale = "out_of_hundred"
)

// Preferences are read per user when committing workouts and running
// imports. SaveHistory bounds every retained history list.
type Preferences struct {
	UnitSystem  UnitSystem  `json:"unit_system"`
	SaveHistory int         `json:"save_history"`
	ReviewScale ReviewScale `json:"review_scale"`
}

type User struct {
	ID          string
	Name        string
	Preferences Preferences
	Ctime       int64
	Mtime       int64
}
