package analytics

import (
	"math"
	"sort"

	"tradelens/internal/models"
)

// histogramBuckets is the fixed bucket count of the P&L histogram.
const histogramBuckets = 20

// HistogramBucket is one equal-width bucket of the P&L histogram.
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Percentiles summarizes the P&L distribution by nearest-rank
// percentiles.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// Histogram is the P&L distribution of a trade set.
type Histogram struct {
	Count       int               `json:"count"`
	Min         float64           `json:"min"`
	Max         float64           `json:"max"`
	Mean        float64           `json:"mean"`
	StdDev      float64           `json:"std_dev"`
	Buckets     []HistogramBucket `json:"buckets"`
	Percentiles Percentiles       `json:"percentiles"`
}

// BuildDistribution builds a 20-bucket equal-width histogram and a
// percentile summary over all realized P&L values. Bucket width falls
// back to 1 when every value is identical, so a bucket is never
// zero-width. Percentiles use nearest-rank indexing (floor(n*p) into
// the ascending values), not interpolation. Trades without a P&L are
// excluded; an empty value set yields the zero Histogram.
func BuildDistribution(trades []models.Trade) Histogram {
	var values []float64
	for i := range trades {
		if trades[i].PnL != nil {
			values = append(values, *trades[i].PnL)
		}
	}

	var h Histogram
	h.Count = len(values)
	if h.Count == 0 {
		return h
	}

	sort.Float64s(values)
	h.Min = values[0]
	h.Max = values[len(values)-1]
	h.Mean = meanOf(values)
	h.StdDev = stddevOf(values)

	width := (h.Max - h.Min) / histogramBuckets
	if width == 0 {
		width = 1
	}

	h.Buckets = make([]HistogramBucket, histogramBuckets)
	for i := range h.Buckets {
		h.Buckets[i].Low = h.Min + float64(i)*width
		h.Buckets[i].High = h.Min + float64(i+1)*width
	}
	for _, v := range values {
		idx := int(math.Floor((v - h.Min) / width))
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Buckets[idx].Count++
	}

	h.Percentiles = Percentiles{
		P10: nearestRank(values, 0.10),
		P25: nearestRank(values, 0.25),
		P50: nearestRank(values, 0.50),
		P75: nearestRank(values, 0.75),
		P90: nearestRank(values, 0.90),
	}
	return h
}

// nearestRank picks the value at floor(n*p) from the ascending sorted
// slice, clamped to the last index.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
