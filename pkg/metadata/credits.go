package metadata

import "strings"

// Credit attributes one person with one role on the issue. The metadata
// record keeps at most one Credit per case-insensitive (person, role) pair,
// in insertion order.
type Credit struct {
	Person  string `json:"person" yaml:"person"`
	Role    string `json:"role" yaml:"role"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// AddCredit ensures exactly one credit exists for the case-insensitive
// (person, role) pair. An existing credit keeps its place and has its
// Primary flag overwritten; otherwise a new credit is appended. Calling it
// repeatedly with identical arguments is idempotent.
//
// Note AddCredit does not clear the Primary flag on other credits with the
// same role; exclusivity of "primary" is caller-side policy, not a model
// invariant.
func (md *GenericMetadata) AddCredit(person, role string, primary bool) {
	for i := range md.Credits {
		c := &md.Credits[i]
		if strings.EqualFold(c.Person, person) && strings.EqualFold(c.Role, role) {
			c.Primary = primary
			return
		}
	}

	md.Credits = append(md.Credits, Credit{Person: person, Role: role, Primary: primary})
}

// overlayCredits applies incoming credits in order. A credit with an empty
// person is a deletion instruction: every existing credit whose role matches
// case-insensitively is removed (scanning from the end so index shifts stay
// stable). Anything else upserts through AddCredit.
func (md *GenericMetadata) overlayCredits(incoming []Credit) {
	for _, c := range incoming {
		if c.Person == "" {
			for i := len(md.Credits) - 1; i >= 0; i-- {
				if strings.EqualFold(md.Credits[i].Role, c.Role) {
					md.Credits = append(md.Credits[:i], md.Credits[i+1:]...)
				}
			}
			continue
		}

		md.AddCredit(c.Person, c.Role, c.Primary)
	}
}
