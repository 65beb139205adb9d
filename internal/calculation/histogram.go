package calculation

// DefaultHistogramBins is the bin count used for simulated end-value distributions
const DefaultHistogramBins = 20

// HistogramBin is one equal-width bucket; Upper is exclusive except for the last bin
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets sorted values into equal-width bins spanning min..max.
// When every value is equal they all land in the first bin.
func Histogram(sorted []float64, bins int) []HistogramBin {
	if len(sorted) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	width := (hi - lo) / float64(bins)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range sorted {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
		}
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}
