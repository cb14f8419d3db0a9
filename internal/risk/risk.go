// Package risk classifies risk levels for presentation
package risk

import (
	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

const (
	weightNone     = 0
	weightLow      = 1
	weightMedium   = 2
	weightHigh     = 3
	weightCritical = 4
)

// ColorFor returns the style a risk level is rendered with.
// Unknown or empty levels get the no-risk style.
func ColorFor(level types.RiskLevel) console.Style {
	switch level {
	case types.RiskLevelCritical:
		return console.StyleBoldRed
	case types.RiskLevelHigh:
		return console.StyleRed
	case types.RiskLevelMedium:
		return console.StyleYellow
	case types.RiskLevelLow:
		return console.StyleBlue
	default:
		return console.StyleGreen
	}
}

// Weight returns the severity weight of a risk level, higher is worse
func Weight(level types.RiskLevel) int {
	switch level {
	case types.RiskLevelCritical:
		return weightCritical
	case types.RiskLevelHigh:
		return weightHigh
	case types.RiskLevelMedium:
		return weightMedium
	case types.RiskLevelLow:
		return weightLow
	default:
		return weightNone
	}
}
