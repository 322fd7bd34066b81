package stats

import (
	"math"
	"strconv"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// BinEdges are the fixed histogram boundaries. Bin i covers [BinEdges[i], BinEdges[i+1]).
var BinEdges = []float64{0, 10, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000, math.Inf(1)}

// OpenBinWidth is the synthetic width given to the unbounded top bin when computing its midpoint
const OpenBinWidth = 10000

// BinCount is the number of histogram bins
func BinCount() int {
	return len(BinEdges) - 1
}

// BinLabels returns the range label of every bin, e.g. "0-9", "10-49", ..., "20000-∞"
func BinLabels() []string {
	labels := make([]string, BinCount())
	for i := range labels {
		low := strconv.FormatFloat(BinEdges[i], 'f', -1, 64)
		high := "∞"
		if !math.IsInf(BinEdges[i+1], 1) {
			high = strconv.FormatFloat(BinEdges[i+1]-1, 'f', -1, 64)
		}
		labels[i] = low + "-" + high
	}
	return labels
}

// BinMidpoints returns the representative x of every bin: the mean of its low and high label
// values, with low+OpenBinWidth standing in for the open top edge.
func BinMidpoints() []float64 {
	mids := make([]float64, BinCount())
	for i := range mids {
		low := BinEdges[i]
		high := BinEdges[i+1] - 1
		if math.IsInf(BinEdges[i+1], 1) {
			high = low + OpenBinWidth
		}
		mids[i] = (low + high) / 2
	}
	return mids
}

// binIndex returns the bin holding v, or -1 if v is below the first edge
func binIndex(v float64) int {
	for i := 0; i < BinCount(); i++ {
		if v >= BinEdges[i] && v < BinEdges[i+1] {
			return i
		}
	}
	return -1
}

// Histogram counts bankrolls per bin. Values outside [0, ∞) are dropped;
// for valid bankrolls the counts sum to len(bankrolls).
func Histogram(bankrolls []float64) domain.HistogramBins {
	counts := make([]int, BinCount())
	for _, b := range bankrolls {
		if i := binIndex(b); i >= 0 {
			counts[i]++
		}
	}
	return domain.HistogramBins{
		Labels: BinLabels(),
		Counts: counts,
	}
}
