package dataset

var fallbackPattern = []string{
	"credit card", "cash", "credit card", "credit card", "cash",
	"credit card", "mobile payment", "credit card", "cash", "credit card",
}

const fallbackRepeats = 20

// Fallback returns the built-in sample dataset used when no source is
// reachable: 200 rows, credit card 120, cash 60, mobile payment 20.
func Fallback() []string {
	out := make([]string, 0, len(fallbackPattern)*fallbackRepeats)
	for i := 0; i < fallbackRepeats; i++ {
		out = append(out, fallbackPattern...)
	}
	return out
}
