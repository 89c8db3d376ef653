package footprint

// Densify inserts factor-1 evenly spaced points between each pair of consecutive points.
// An n point input yields (n-1)*factor+1 points; order and closure are kept.
// A factor below 2 returns a copy of the input.
func Densify(points [][]float64, factor int) [][]float64 {
	if factor < 2 || len(points) < 2 {
		return copyRing(points)
	}

	dense := make([][]float64, 0, (len(points)-1)*factor+1)
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		for step := 0; step < factor; step++ {
			frac := float64(step) / float64(factor)
			dense = append(dense, []float64{
				start[0] + (end[0]-start[0])*frac,
				start[1] + (end[1]-start[1])*frac,
			})
		}
	}
	last := points[len(points)-1]
	return append(dense, []float64{last[0], last[1]})
}

func copyRing(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = append([]float64(nil), p...)
	}
	return out
}
