package domain

// Matchpoints compares the North-South scores recorded at every table for one board.
// Each score earns 1 for every other score it beats and 0.5 for every tie. A board
// played once earns the average, 0.5.
// East-West matchpoints for the same table are Top(len(scores)) minus the North-South value.
func Matchpoints(scores []int) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 1 {
		out[0] = 0.5
		return out
	}
	for i, s := range scores {
		for j, other := range scores {
			if i == j {
				continue
			}
			switch {
			case s > other:
				out[i] += 1
			case s == other:
				out[i] += 0.5
			}
		}
	}
	return out
}

// Top is the maximum matchpoints available on a board played at n tables.
func Top(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}

// Percentages converts matchpoints to a percentage of top, rounded to two decimals.
func Percentages(mps []float64) []float64 {
	top := Top(len(mps))
	out := make([]float64, len(mps))
	for i, mp := range mps {
		out[i] = float64(int64(mp/top*10000+0.5)) / 100
	}
	return out
}
