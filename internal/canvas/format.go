package canvas

import "strconv"

// formatNumber renders v in the shortest form that round-trips, so whole
// values print without a fraction ("400", "1.1")
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
