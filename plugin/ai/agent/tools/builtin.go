package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/server/service/babycare"
)

// builtin holds what every assistant tool needs.
type builtin struct {
	svc  babycare.Service
	time aitime.TimeService
	loc  *time.Location
}

// NewBuiltinRegistry registers every assistant tool backed by svc. Times in tool
// output are rendered in the time service's location.
func NewBuiltinRegistry(svc babycare.Service, ts aitime.TimeService) (*Registry, error) {
	if ts == nil {
		ts = aitime.NewService(nil)
	}
	b := &builtin{svc: svc, time: ts, loc: ts.Location()}
	r := NewRegistry()
	for _, t := range []Tool{
		b.createTimer(), b.editTimer(), b.finishTimer(), b.stopTimer(), b.listTimers(),
		b.createFeeding(), b.editFeeding(), b.deleteFeeding(), b.getFeedings(),
		b.createSleep(), b.editSleep(), b.getSleep(),
		b.createDiaper(), b.editDiaper(), b.getDiapers(),
		b.createTummyTime(), b.getTummyTime(),
		b.childSummary(),
	} {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (b *builtin) clock(t time.Time) string {
	return t.In(b.loc).Format("15:04")
}

func requireID(id int32, what string) error {
	if id <= 0 {
		return &babycare.Error{
			Kind:    babycare.KindValidation,
			Message: fmt.Sprintf("A %s id is required", what),
			Fields:  map[string][]string{"id": {"This field is required."}},
		}
	}
	return nil
}

func timeframe(raw string) (babycare.Timeframe, error) {
	return babycare.ParseTimeframe(strings.ToLower(strings.TrimSpace(raw)))
}

// listing renders numbered lines under a heading, or empty when there are none.
func listing(heading, empty string, lines []string) string {
	if len(lines) == 0 {
		return empty
	}
	var b strings.Builder
	b.WriteString(heading)
	b.WriteByte('\n')
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeTimeframe(tf babycare.Timeframe) string {
	switch tf {
	case babycare.TimeframeToday:
		return "today"
	case babycare.TimeframeLast:
		return "(latest)"
	default:
		return "(recent)"
	}
}
