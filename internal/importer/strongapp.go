package importer

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

// strongEntry is one flat row of a strong-app CSV export. Rows group
// into sets, exercises and workouts by ordinal boundaries: the set
// order number resets when a new exercise starts, and the date changes
// when a new workout starts.
type strongEntry struct {
	date            string
	workoutName     string
	workoutDuration string
	workoutNotes    string
	exerciseName    string
	setOrder        int
	weight          *float64
	reps            *int
	distance        *float64
	seconds         *float64
	notes           string
}

var workoutDurationRegex = regexp.MustCompile(`^(\d+h)?\s?(\d+m)?$`)

// StrongApp parses a strong-app CSV export into canonical workouts.
// exerciseIDByName is a read-only exact-match table of internal catalog
// exercises; every mapped target name must resolve through it.
func StrongApp(input *model.DeployStrongAppInput, export string, exerciseIDByName map[string]string) (*model.ImportResult, error) {
	entries, err := parseStrongEntries(export)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: export contains no rows", appErr.ErrParse)
	}
	// Sentinel row so the final exercise and workout flush like any other.
	entries = append(entries, strongEntry{date: "invalid", setOrder: 0})

	workouts := make([]model.WorkoutInput, 0)
	exercises := make([]model.WorkoutExerciseInput, 0)
	sets := make([]model.WorkoutSetInput, 0)
	notes := make([]string, 0)
	for idx := 0; idx+1 < len(entries); idx += 1 {
		entry, next := entries[idx], entries[idx+1]
		statistic := model.SetStatistic{
			Distance: entry.distance,
			Reps:     entry.reps,
		}
		if entry.seconds != nil {
			minutes := *entry.seconds / 60
			statistic.Duration = &minutes
		}
		if entry.weight != nil {
			weight := *entry.weight
			// Bodyweight rows export as zero; record them as one so
			// volume and one-rm projections stay meaningful.
			if weight == 0 {
				weight = 1
			}
			statistic.Weight = &weight
		}
		sets = append(sets, model.WorkoutSetInput{Statistic: statistic, Lot: model.SetLotNormal})
		if entry.notes != "" {
			notes = append(notes, entry.notes)
		}
		if next.setOrder <= entry.setOrder {
			exerciseID, err := resolveStrongExercise(input.Mapping, entry.exerciseName, exerciseIDByName)
			if err != nil {
				return nil, err
			}
			exercises = append(exercises, model.WorkoutExerciseInput{
				ExerciseID: exerciseID,
				Sets:       sets,
				Notes:      notes,
				Assets:     []string{},
			})
			sets = make([]model.WorkoutSetInput, 0)
			notes = make([]string, 0)
		}
		if next.date != entry.date {
			startTime, err := time.Parse("2006-01-02 15:04:05", entry.date)
			if err != nil {
				return nil, fmt.Errorf("%w: bad workout date %q", appErr.ErrParse, entry.date)
			}
			var comment *string
			if entry.workoutNotes != "" {
				c := entry.workoutNotes
				comment = &c
			}
			workouts = append(workouts, model.WorkoutInput{
				Name:      entry.workoutName,
				Comment:   comment,
				StartTime: startTime.UTC(),
				EndTime:   startTime.UTC().Add(parseWorkoutDuration(entry.workoutDuration)),
				Exercises: exercises,
				Supersets: [][]int{},
				Assets:    []string{},
			})
			exercises = make([]model.WorkoutExerciseInput, 0)
		}
	}
	return &model.ImportResult{
		Collections: []model.CreateCollectionInput{},
		Media:       []model.ImportMediaItem{},
		FailedItems: []model.ImportFailedItem{},
		Workouts:    workouts,
	}, nil
}

// parseWorkoutDuration reads the free-text `<N>h <M>m` duration field.
// Missing components default to zero; text the pattern rejects counts
// as a zero-length workout, never an error.
func parseWorkoutDuration(value string) time.Duration {
	captures := workoutDurationRegex.FindStringSubmatch(strings.TrimSpace(value))
	if captures == nil {
		return 0
	}
	var hours, minutes int64
	if captures[1] != "" {
		hours, _ = strconv.ParseInt(strings.TrimSuffix(captures[1], "h"), 10, 64)
	}
	if captures[2] != "" {
		minutes, _ = strconv.ParseInt(strings.TrimSuffix(captures[2], "m"), 10, 64)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
}

func resolveStrongExercise(mapping []model.StrongAppNameMapping, sourceName string, exerciseIDByName map[string]string) (string, error) {
	trimmed := strings.TrimSpace(sourceName)
	for _, entry := range mapping {
		if entry.SourceName != trimmed {
			continue
		}
		if id, ok := exerciseIDByName[entry.TargetName]; ok {
			return id, nil
		}
		return "", fmt.Errorf("%w: mapped exercise %q not in catalog", appErr.ErrParse, entry.TargetName)
	}
	return "", fmt.Errorf("%w: no mapping for exercise %q", appErr.ErrParse, trimmed)
}

func parseStrongEntries(export string) ([]strongEntry, error) {
	reader := csv.NewReader(strings.NewReader(export))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrParse, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: export has no header", appErr.ErrParse)
	}
	column := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		column[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "Workout Name", "Exercise Name", "Set Order"} {
		if _, ok := column[required]; !ok {
			return nil, fmt.Errorf("%w: export missing column %q", appErr.ErrParse, required)
		}
	}
	field := func(record []string, name string) string {
		idx, ok := column[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}
	entries := make([]strongEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		setOrder, err := strconv.Atoi(strings.TrimSpace(field(record, "Set Order")))
		if err != nil {
			return nil, fmt.Errorf("%w: bad set order %q", appErr.ErrParse, field(record, "Set Order"))
		}
		entries = append(entries, strongEntry{
			date:            field(record, "Date"),
			workoutName:     field(record, "Workout Name"),
			workoutDuration: field(record, "Workout Duration"),
			workoutNotes:    field(record, "Workout Notes"),
			exerciseName:    field(record, "Exercise Name"),
			setOrder:        setOrder,
			weight:          parseOptFloat(field(record, "Weight")),
			reps:            parseOptInt(field(record, "Reps")),
			distance:        parseOptFloat(field(record, "Distance")),
			seconds:         parseOptFloat(field(record, "Seconds")),
			notes:           field(record, "Notes"),
		})
	}
	return entries, nil
}

func parseOptFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseOptInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}
