package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name             string
		bankrolls        []float64
		starting         float64
		expectedPositive float64
		expectedRuined   float64
		expectedAverage  float64
		expectedP50      float64
		expectedP90      float64
		expectedP99      float64
	}{
		{
			name:             "single value is every percentile",
			bankrolls:        []float64{42},
			starting:         100,
			expectedAverage:  42,
			expectedP50:      42,
			expectedP90:      42,
			expectedP99:      42,
		},
		{
			name:             "ten values",
			bankrolls:        []float64{0, 300, 0, 100, 50, 0, 120, 80, 0, 1000},
			starting:         100,
			expectedPositive: 0.3,
			expectedRuined:   0.4,
			expectedAverage:  165,
			// sorted: 0 0 0 0 50 80 100 120 300 1000
			expectedP50: 50,  // floor(0.5*9)=4
			expectedP90: 300, // floor(0.9*9)=8
			expectedP99: 300, // floor(0.99*9)=8
		},
		{
			name:             "exactly starting bankroll is not positive",
			bankrolls:        []float64{100, 100, 101},
			starting:         100,
			expectedPositive: 1.0 / 3.0,
			expectedAverage:  301.0 / 3.0,
			expectedP50:      100,
			expectedP90:      100,
			expectedP99:      100,
		},
		{
			name:           "all ruined",
			bankrolls:      []float64{0, 0, 0, 0},
			starting:       100,
			expectedRuined: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Summarize(tt.bankrolls, tt.starting)
			require.NoError(t, err)

			assert.InDelta(t, tt.expectedPositive, s.FractionPositive, 1e-12)
			assert.InDelta(t, tt.expectedRuined, s.FractionRuined, 1e-12)
			assert.InDelta(t, tt.expectedAverage, s.Average, 1e-9)
			assert.Equal(t, tt.expectedP50, s.P50)
			assert.Equal(t, tt.expectedP90, s.P90)
			assert.Equal(t, tt.expectedP99, s.P99)
			assert.LessOrEqual(t, s.FractionPositive+s.FractionRuined, 1.0)
			assert.Len(t, s.Sorted, len(tt.bankrolls))
		})
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	in := []float64{5, 1, 3}
	s, err := Summarize(in, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 1, 3}, in)
	assert.Equal(t, []float64{1, 3, 5}, s.Sorted)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestPercentile_Ordering(t *testing.T) {
	sorted := make([]float64, 1000)
	for i := range sorted {
		sorted[i] = float64(i * i)
	}

	p50 := Percentile(sorted, Median)
	p90 := Percentile(sorted, Percentile90)
	p99 := Percentile(sorted, Percentile99)

	assert.Equal(t, float64(499*499), p50)
	assert.Equal(t, float64(899*899), p90)
	assert.Equal(t, float64(989*989), p99)
	assert.LessOrEqual(t, p50, p90)
	assert.LessOrEqual(t, p90, p99)
	assert.Equal(t, 0.0, Percentile(nil, Median))
}

func TestResult(t *testing.T) {
	r, err := Result(0.25, []float64{200, 0, 100}, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.25, r.P)
	assert.InDelta(t, 0.75, r.Variance, 1e-12)
	assert.Equal(t, []float64{0, 100, 200}, r.FinalBankrolls)
	assert.InDelta(t, 1.0/3.0, r.FractionPositive, 1e-12)
	assert.InDelta(t, 1.0/3.0, r.FractionRuined, 1e-12)
	assert.Equal(t, 100.0, r.Average)

	_, err = Result(0.25, nil, 100)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.Contains(t, err.Error(), "p=0.25")
}
