package babycare

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`-?\d*\.?\d+`)

var (
	wetKeywords   = []string{"wet", "pee", "urine"}
	solidKeywords = []string{"solid", "dirty", "poop", "poo", "bm", "stool"}
)

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// NormalizeFeedingType maps free text onto a feeding type. Unmatched input is breast milk.
func NormalizeFeedingType(raw string) string {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "fortified"):
		return FeedingTypeFortifiedBreastMilk
	case strings.Contains(s, "formula"):
		return FeedingTypeFormula
	case strings.Contains(s, "solid"):
		return FeedingTypeSolidFood
	case containsAny(s, "breast", "milk"):
		return FeedingTypeBreastMilk
	default:
		return FeedingTypeBreastMilk
	}
}

// NormalizeFeedingMethod maps free text onto a feeding method. A bare "breast" means
// both breasts; unmatched input is bottle.
func NormalizeFeedingMethod(raw string) string {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "bottle"):
		return FeedingMethodBottle
	case strings.Contains(s, "left"):
		return FeedingMethodLeftBreast
	case strings.Contains(s, "right"):
		return FeedingMethodRightBreast
	case strings.Contains(s, "both"):
		return FeedingMethodBothBreasts
	case strings.Contains(s, "breast"):
		return FeedingMethodBothBreasts
	case strings.Contains(s, "parent"):
		return FeedingMethodParentFed
	case strings.Contains(s, "self"):
		return FeedingMethodSelfFed
	default:
		return FeedingMethodBottle
	}
}

// DiaperContents is the wet/solid pair of a diaper change.
type DiaperContents struct {
	Wet   bool `json:"wet"`
	Solid bool `json:"solid"`
}

// NormalizeDiaperContents maps free text onto wet/solid. Unmatched input is wet only.
func NormalizeDiaperContents(raw string) DiaperContents {
	s := strings.ToLower(raw)
	wet := containsAny(s, wetKeywords...)
	solid := containsAny(s, solidKeywords...)
	switch {
	case containsAny(s, "both", "mixed"), wet && solid:
		return DiaperContents{Wet: true, Solid: true}
	case wet:
		return DiaperContents{Wet: true}
	case solid:
		return DiaperContents{Solid: true}
	default:
		return DiaperContents{Wet: true}
	}
}

// NormalizeAmount returns the first decimal number in raw, or nil. A sign is kept so
// validation can reject negative amounts.
func NormalizeAmount(raw string) *float64 {
	m := amountPattern.FindString(raw)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeDiaperColor keeps known stool colors and drops anything else.
func NormalizeDiaperColor(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range DiaperColors {
		if strings.Contains(s, c) {
			return c
		}
	}
	return ""
}

// diaperContents resolves the explicit flags or the free-text contents of a diaper change.
func diaperContents(contents string, wet, solid *bool) DiaperContents {
	if wet != nil || solid != nil {
		var c DiaperContents
		if wet != nil {
			c.Wet = *wet
		}
		if solid != nil {
			c.Solid = *solid
		}
		return c
	}
	return NormalizeDiaperContents(contents)
}
