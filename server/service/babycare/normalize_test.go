package babycare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFeedingMethod(t *testing.T) {
	tests := map[string]string{
		"Breast":            FeedingMethodBothBreasts,
		"Left Breast":       FeedingMethodLeftBreast,
		"right side":        FeedingMethodRightBreast,
		"both":              FeedingMethodBothBreasts,
		"bottle of formula": FeedingMethodBottle,
		"left, then bottle": FeedingMethodBottle,
		"parent fed":        FeedingMethodParentFed,
		"self-feeding":      FeedingMethodSelfFed,
		"???":               FeedingMethodBottle,
		"":                  FeedingMethodBottle,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, NormalizeFeedingMethod(input))
		})
	}
}

func TestNormalizeFeedingType(t *testing.T) {
	tests := map[string]string{
		"Formula":               FeedingTypeFormula,
		"fortified breast milk": FeedingTypeFortifiedBreastMilk,
		"Fortified":             FeedingTypeFortifiedBreastMilk,
		"solids":                FeedingTypeSolidFood,
		"milk":                  FeedingTypeBreastMilk,
		"breastmilk":            FeedingTypeBreastMilk,
		"???":                   FeedingTypeBreastMilk,
		"":                      FeedingTypeBreastMilk,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, NormalizeFeedingType(input))
		})
	}
}

func TestNormalizeDiaperContents(t *testing.T) {
	tests := []struct {
		input string
		want  DiaperContents
	}{
		{"wet", DiaperContents{Wet: true}},
		{"pee", DiaperContents{Wet: true}},
		{"poop", DiaperContents{Solid: true}},
		{"Dirty", DiaperContents{Solid: true}},
		{"both", DiaperContents{Wet: true, Solid: true}},
		{"mixed", DiaperContents{Wet: true, Solid: true}},
		{"wet and dirty", DiaperContents{Wet: true, Solid: true}},
		{"???", DiaperContents{Wet: true}},
		{"", DiaperContents{Wet: true}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDiaperContents(tt.input))
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"4", ptr(4.0)},
		{"4.5 oz", ptr(4.5)},
		{"about 120 ml", ptr(120.0)},
		{".5", ptr(0.5)},
		{"-4", ptr(-4.0)},
		{"-2.5 oz", ptr(-2.5)},
		{"", nil},
		{"a lot", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeAmount(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalizeDiaperColor(t *testing.T) {
	assert.Equal(t, "brown", NormalizeDiaperColor("Brown"))
	assert.Equal(t, "green", NormalizeDiaperColor("dark green"))
	assert.Equal(t, "", NormalizeDiaperColor("purple"))
}

func ptr[T any](v T) *T {
	return &v
}
