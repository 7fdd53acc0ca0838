package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

const strongExportHeader = "Date;Workout Name;Workout Duration;Workout Notes;Exercise Name;Set Order;Weight;Reps;Distance;Seconds;Notes"

func strongInput() *model.DeployStrongAppInput {
	return &model.DeployStrongAppInput{
		ExportKey: "export",
		Mapping: []model.StrongAppNameMapping{
			{SourceName: "Bench Press (Barbell)", TargetName: "Bench Press"},
			{SourceName: "Squat (Barbell)", TargetName: "Squat"},
			{SourceName: "Plank", TargetName: "Plank"},
		},
	}
}

func strongCatalog() map[string]string {
	return map[string]string{
		"Bench Press": "ex_bench",
		"Squat":       "ex_squat",
		"Plank":       "ex_plank",
	}
}

func TestStrongAppSplitsExercisesAndWorkouts(t *testing.T) {
	export := strongExportHeader + "\n" +
		"2023-01-02 10:00:00;Push Day;1h 30m;felt strong;Bench Press (Barbell);1;60;8;;;\n" +
		"2023-01-02 10:00:00;Push Day;1h 30m;felt strong;Bench Press (Barbell);2;60;6;;;\n" +
		"2023-01-02 10:00:00;Push Day;1h 30m;felt strong;Squat (Barbell);1;100;5;;;\n" +
		"2023-01-03 18:30:00;Core;20m;;Plank;1;;;;90;\n"

	result, err := StrongApp(strongInput(), export, strongCatalog())
	require.NoError(t, err)
	require.Len(t, result.Workouts, 2)

	first := result.Workouts[0]
	require.Equal(t, "Push Day", first.Name)
	require.NotNil(t, first.Comment)
	require.Equal(t, "felt strong", *first.Comment)
	require.Equal(t, time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC), first.StartTime)
	require.Equal(t, first.StartTime.Add(90*time.Minute), first.EndTime)
	require.Len(t, first.Exercises, 2)
	require.Equal(t, "ex_bench", first.Exercises[0].ExerciseID)
	require.Len(t, first.Exercises[0].Sets, 2)
	require.Equal(t, "ex_squat", first.Exercises[1].ExerciseID)
	require.Len(t, first.Exercises[1].Sets, 1)

	second := result.Workouts[1]
	require.Equal(t, "Core", second.Name)
	require.Nil(t, second.Comment)
	require.Equal(t, second.StartTime.Add(20*time.Minute), second.EndTime)
	require.Len(t, second.Exercises, 1)
	require.Len(t, second.Exercises[0].Sets, 1)
}

func TestStrongAppConvertsSecondsToMinutes(t *testing.T) {
	export := strongExportHeader + "\n" +
		"2023-01-03 18:30:00;Core;20m;;Plank;1;;;;90;\n"

	result, err := StrongApp(strongInput(), export, strongCatalog())
	require.NoError(t, err)
	require.Len(t, result.Workouts, 1)
	set := result.Workouts[0].Exercises[0].Sets[0]
	require.NotNil(t, set.Statistic.Duration)
	require.InDelta(t, 1.5, *set.Statistic.Duration, 1e-9)
	require.Nil(t, set.Statistic.Weight)
}

func TestStrongAppZeroWeightBecomesOne(t *testing.T) {
	export := strongExportHeader + "\n" +
		"2023-01-02 10:00:00;Push Day;1h;;Bench Press (Barbell);1;0;12;;;\n"

	result, err := StrongApp(strongInput(), export, strongCatalog())
	require.NoError(t, err)
	set := result.Workouts[0].Exercises[0].Sets[0]
	require.NotNil(t, set.Statistic.Weight)
	require.Equal(t, float64(1), *set.Statistic.Weight)
	require.NotNil(t, set.Statistic.Reps)
	require.Equal(t, 12, *set.Statistic.Reps)
}

func TestStrongAppCollectsSetNotes(t *testing.T) {
	export := strongExportHeader + "\n" +
		"2023-01-02 10:00:00;Push Day;1h;;Bench Press (Barbell);1;60;8;;;paused reps\n" +
		"2023-01-02 10:00:00;Push Day;1h;;Bench Press (Barbell);2;60;8;;;\n"

	result, err := StrongApp(strongInput(), export, strongCatalog())
	require.NoError(t, err)
	require.Equal(t, []string{"paused reps"}, result.Workouts[0].Exercises[0].Notes)
}

func TestStrongAppUnmappedExerciseFailsJob(t *testing.T) {
	export := strongExportHeader + "\n" +
		"2023-01-02 10:00:00;Push Day;1h;;Mystery Lift;1;60;8;;;\n"

	_, err := StrongApp(strongInput(), export, strongCatalog())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrParse))
}

func TestStrongAppMappedButMissingFromCatalog(t *testing.T) {
	input := strongInput()
	input.Mapping = append(input.Mapping, model.StrongAppNameMapping{
		SourceName: "Deadlift (Barbell)", TargetName: "Deadlift",
	})
	export := strongExportHeader + "\n" +
		"2023-01-02 10:00:00;Pull Day;1h;;Deadlift (Barbell);1;120;5;;;\n"

	_, err := StrongApp(input, export, strongCatalog())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrParse))
}

func TestStrongAppBadDateFailsJob(t *testing.T) {
	export := strongExportHeader + "\n" +
		"yesterday;Push Day;1h;;Bench Press (Barbell);1;60;8;;;\n"

	_, err := StrongApp(strongInput(), export, strongCatalog())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrParse))
}

func TestStrongAppEmptyExportFailsJob(t *testing.T) {
	_, err := StrongApp(strongInput(), strongExportHeader+"\n", strongCatalog())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrParse))

	_, err = StrongApp(strongInput(), "not a csv at all", strongCatalog())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrParse))
}

func TestParseWorkoutDuration(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{"1h 30m", 90 * time.Minute},
		{"2h", 2 * time.Hour},
		{"45m", 45 * time.Minute},
		{"", 0},
		{"about an hour", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parseWorkoutDuration(tc.value), "value %q", tc.value)
	}
}
