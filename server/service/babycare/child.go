package babycare

import (
	"strings"

	"github.com/hrygo/nursery/store"
)

// ResolveChild matches query against the roster, case-insensitive and trimmed.
// The first roster entry satisfying any rule wins, so roster order breaks ties
// ("em" on [Emma, Em] is Emma). For one entry the rules are checked in order:
//  1. first name equals query
//  2. first name contains query
//  3. full name equals query
//  4. full name contains query
func ResolveChild(roster []*store.Child, query string) (*store.Child, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Message: "Child name is required",
			Fields:  map[string][]string{"child_name": {"This field is required."}},
		}
	}

	rules := []func(c *store.Child) bool{
		func(c *store.Child) bool { return strings.ToLower(c.FirstName) == q },
		func(c *store.Child) bool { return strings.Contains(strings.ToLower(c.FirstName), q) },
		func(c *store.Child) bool { return strings.ToLower(c.FullName()) == q },
		func(c *store.Child) bool { return strings.Contains(strings.ToLower(c.FullName()), q) },
	}
	for _, c := range roster {
		for _, match := range rules {
			if match(c) {
				return c, nil
			}
		}
	}
	return nil, notFoundf("Child %q not found", strings.TrimSpace(query))
}
