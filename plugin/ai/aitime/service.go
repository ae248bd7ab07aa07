package aitime

import (
	"time"
)

// Service implements TimeService on top of Parser.
type Service struct {
	parser *Parser
}

// NewService creates a new time service for loc (nil means process-local).
func NewService(loc *time.Location) *Service {
	return &Service{parser: NewParser(loc)}
}

// NewServiceWithClock creates a time service with an injected clock.
func NewServiceWithClock(loc *time.Location, clock func() time.Time) *Service {
	return &Service{parser: NewParser(loc).WithClock(clock)}
}

func (s *Service) Normalize(input string) (time.Time, bool) {
	return s.parser.Parse(input)
}

func (s *Service) Now() time.Time {
	return s.parser.now().In(s.parser.timezone)
}

func (s *Service) Location() *time.Location {
	return s.parser.timezone
}

// Ensure Service implements TimeService
var _ TimeService = (*Service)(nil)
