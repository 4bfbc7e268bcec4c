// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any amount, FormatCurrency should:
// 1. Have exactly 2 decimal places
// 2. Group the integer part in threes
// 3. Preserve the numeric value when parsed back
func TestProperty_CurrencyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	groupPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatCurrency produces grouped output", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}
			if math.Abs(amount) > 1e12 {
				return true
			}

			formatted := FormatCurrency(amount)

			if amount < 0 && !strings.HasPrefix(formatted, "-") {
				t.Logf("Expected - prefix for %f, got %s", amount, formatted)
				return false
			}

			parts := strings.Split(strings.TrimPrefix(formatted, "-"), ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			if !groupPattern.MatchString(parts[0]) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}

			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatCurrency preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}
			if math.Abs(amount) > 1e9 {
				return true
			}

			formatted := FormatCurrency(amount)
			cleaned := strings.ReplaceAll(formatted, ",", "")

			parsed, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				t.Logf("Failed to parse %s back: %v", formatted, err)
				return false
			}

			// Formatting rounds to 2 decimals
			return math.Abs(parsed-amount) <= 0.005+math.Abs(amount)*1e-12
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}
