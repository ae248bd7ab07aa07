package store

import (
	"context"
	"strings"
)

// Child is the object representing a child on the roster.
type Child struct {
	ID        int32
	FirstName string
	LastName  string
	// BirthDate is a calendar date formatted as 2006-01-02.
	BirthDate string
	Slug      string
}

// FullName returns "first last", or just the first name when the last name is empty.
func (c *Child) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ListChildren fetches the roster.
func (s *Store) ListChildren(ctx context.Context) ([]*Child, error) {
	return s.driver.ListChildren(ctx)
}
