// Package directory finds the best matching CRM contact or company for an
// outreach candidate.
package directory

import "context"

// Entry is a CRM contact or company in backend-neutral form. Timestamp
// fields hold the raw CRM value: epoch milliseconds or an ISO date string.
type Entry struct {
	ID    string
	Name  string
	Email string

	LastContacted string
	LastActivity  string
	LastModified  string
	Created       string
}

// Page is one page of a contact directory scan. Next is "" on the last page.
type Page struct {
	Entries []Entry
	Next    string
}

// Directory is the read side of a CRM.
type Directory interface {
	// FindContactsByEmail returns contacts whose email equals email exactly.
	FindContactsByEmail(ctx context.Context, email string) ([]Entry, error)
	// ListContacts returns one page of the full contact directory.
	ListContacts(ctx context.Context, after string, limit int) (Page, error)
	// SearchCompanies returns companies whose name contains token as a word.
	SearchCompanies(ctx context.Context, token string) ([]Entry, error)
}
