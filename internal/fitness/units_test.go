package fitness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mireo/fitvault/internal/model"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestNormalizeUnitsMetricIsNoop(t *testing.T) {
	set := model.WorkoutSetInput{Statistic: model.SetStatistic{Weight: f(100), Distance: f(5)}}
	NormalizeUnits(&set, model.UnitSystemMetric)
	NormalizeUnits(&set, model.UnitSystemMetric)
	require.Equal(t, 100.0, *set.Statistic.Weight)
	require.Equal(t, 5.0, *set.Statistic.Distance)
}

func TestNormalizeUnitsImperial(t *testing.T) {
	set := model.WorkoutSetInput{Statistic: model.SetStatistic{Weight: f(100), Distance: f(2), Duration: f(30)}}
	NormalizeUnits(&set, model.UnitSystemImperial)
	require.InDelta(t, 45.359, *set.Statistic.Weight, 1e-9)
	require.InDelta(t, 3.21868, *set.Statistic.Distance, 1e-9)
	require.Equal(t, 30.0, *set.Statistic.Duration)
}

func TestSanitizeStatistic(t *testing.T) {
	full := model.SetStatistic{Duration: f(10), Distance: f(2), Reps: i(8), Weight: f(60)}

	tests := []struct {
		name string
		lot  model.ExerciseLot
		want model.SetStatistic
	}{
		{
			name: "duration keeps only duration",
			lot:  model.ExerciseLotDuration,
			want: model.SetStatistic{Duration: f(10)},
		},
		{
			name: "distance and duration",
			lot:  model.ExerciseLotDistanceAndDuration,
			want: model.SetStatistic{Duration: f(10), Distance: f(2)},
		},
		{
			name: "reps and weight",
			lot:  model.ExerciseLotRepsAndWeight,
			want: model.SetStatistic{Reps: i(8), Weight: f(60)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeStatistic(full, tt.lot))
		})
	}
}

func TestSanitizeStatisticNeverDropsValidFields(t *testing.T) {
	stat := model.SetStatistic{Reps: i(12), Weight: f(40)}
	got := SanitizeStatistic(stat, model.ExerciseLotRepsAndWeight)
	require.Equal(t, stat, got)
}
