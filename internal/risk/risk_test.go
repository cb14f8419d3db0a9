package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

func TestColorFor(t *testing.T) {
	testCases := []struct {
		level    types.RiskLevel
		expected console.Style
	}{
		{level: types.RiskLevelCritical, expected: console.StyleBoldRed},
		{level: types.RiskLevelHigh, expected: console.StyleRed},
		{level: types.RiskLevelMedium, expected: console.StyleYellow},
		{level: types.RiskLevelLow, expected: console.StyleBlue},
		{level: types.RiskLevelNone, expected: console.StyleGreen},
		{level: "", expected: console.StyleGreen},
		{level: "catastrophic", expected: console.StyleGreen},
	}

	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			for range 3 {
				assert.Equal(t, tc.expected, ColorFor(tc.level))
			}
		})
	}
}

func TestColorForDistinct(t *testing.T) {
	levels := []types.RiskLevel{
		types.RiskLevelCritical,
		types.RiskLevelHigh,
		types.RiskLevelMedium,
		types.RiskLevelLow,
		"unknown",
	}

	seen := make(map[console.Style]types.RiskLevel)
	for _, level := range levels {
		style := ColorFor(level)
		if prev, ok := seen[style]; ok {
			t.Fatalf("levels %q and %q share style %q", prev, level, style)
		}

		seen[style] = level
	}
}

func TestWeightOrdering(t *testing.T) {
	ordered := []types.RiskLevel{
		types.RiskLevelNone,
		types.RiskLevelLow,
		types.RiskLevelMedium,
		types.RiskLevelHigh,
		types.RiskLevelCritical,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, Weight(ordered[i]), Weight(ordered[i-1]))
	}

	assert.Equal(t, Weight(types.RiskLevelNone), Weight("bogus"))
}
