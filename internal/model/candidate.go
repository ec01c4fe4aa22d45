// Package model defines the records that flow through the outreach pipeline.
package model

import "strings"

// Sentinel values stamped into annotation fields when the CRM has no data.
const (
	NoContactFound       = "No contact found"
	NoContactPersonFound = "No contact person found"
	NoDateFound          = "No date found"
)

// Candidate is one company proposed by the language model.
//
// Name, Website, Region and Email come from the parser. The remaining
// fields are stamped later by the dedup engine and by the operator.
type Candidate struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Region  string `json:"region"`
	Email   string `json:"email"`

	// ContactName is set when a CRM contact person superseded the scraped email.
	ContactName *string `json:"contact_name,omitempty"`
	// OrgLastContact is the CRM organization's last activity date or a sentinel.
	OrgLastContact *string `json:"org_last_contact,omitempty"`
	// PersonLastContact is the CRM contact person's last contact date or a sentinel.
	PersonLastContact *string `json:"person_last_contact,omitempty"`

	Meta Metadata `json:"meta"`
}

// Metadata holds operator-entered values that end up in the sheet row.
type Metadata struct {
	Group    string `json:"group,omitempty"`
	Member   string `json:"member,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// TrimmedName returns the candidate name without surrounding whitespace.
func (c Candidate) TrimmedName() string {
	return strings.TrimSpace(c.Name)
}

// Valid reports whether the candidate may be persisted.
func (c Candidate) Valid() bool {
	return c.TrimmedName() != ""
}

// OrgContacted reports whether the CRM knows the organization.
func (c Candidate) OrgContacted() bool {
	return c.OrgLastContact != nil && *c.OrgLastContact != NoContactFound
}

// Str returns a pointer to s. Used for the optional annotation fields.
func Str(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
