package pricing

import "fmt"

// FormatEuros converts an amount of cents to a display string like "€156.40".
// This is the only place in the codebase where cents become euros; formatted
// strings are display-only and never flow back into arithmetic.
func FormatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€%d.%02d", sign, cents/100, cents%100)
}
