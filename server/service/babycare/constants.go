package babycare

import "time"

// Feeding types accepted by the activity store.
const (
	FeedingTypeBreastMilk          = "breast milk"
	FeedingTypeFormula             = "formula"
	FeedingTypeFortifiedBreastMilk = "fortified breast milk"
	FeedingTypeSolidFood           = "solid food"
)

// Feeding methods accepted by the activity store.
const (
	FeedingMethodBottle      = "bottle"
	FeedingMethodLeftBreast  = "left breast"
	FeedingMethodRightBreast = "right breast"
	FeedingMethodBothBreasts = "both breasts"
	FeedingMethodParentFed   = "parent fed"
	FeedingMethodSelfFed     = "self fed"
)

// Activity names used in results, metrics and feeds.
const (
	ActivityFeeding   = "feeding"
	ActivitySleep     = "sleep"
	ActivityDiaper    = "diaper"
	ActivityTummyTime = "tummy_time"
)

const (
	// Default windows for records created without explicit times, ending now.
	DefaultFeedingWindow   = time.Second
	DefaultSleepWindow     = time.Hour
	DefaultTummyTimeWindow = 15 * time.Minute

	// MinimumFinalizedSpan is enforced when a finalized timer ends at or before its start.
	MinimumFinalizedSpan = time.Second

	// DefaultRecentLimit is used for "recent" queries without a limit.
	DefaultRecentLimit = 5
	MaxRecentLimit     = 50
)

var (
	FeedingTypes   = []string{FeedingTypeBreastMilk, FeedingTypeFormula, FeedingTypeFortifiedBreastMilk, FeedingTypeSolidFood}
	FeedingMethods = []string{FeedingMethodBottle, FeedingMethodLeftBreast, FeedingMethodRightBreast, FeedingMethodBothBreasts, FeedingMethodParentFed, FeedingMethodSelfFed}
	DiaperColors   = []string{"black", "brown", "green", "yellow"}
)
