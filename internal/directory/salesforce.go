package directory

import (
	"context"
	"strings"

	"github.com/csbb5959/sales-challenge-tool/pkg/salesforce"
)

// Salesforce adapts a salesforce.Client to Directory. Contact.LastActivityDate
// plays the role of the last-contacted date.
type Salesforce struct {
	client salesforce.Client
}

// NewSalesforce wraps client.
func NewSalesforce(client salesforce.Client) *Salesforce {
	return &Salesforce{client: client}
}

func (s *Salesforce) FindContactsByEmail(ctx context.Context, email string) ([]Entry, error) {
	contacts, err := salesforce.FindContactsByEmail(ctx, s.client, email)
	if err != nil {
		return nil, err
	}
	return sfContacts(contacts), nil
}

func (s *Salesforce) ListContacts(ctx context.Context, after string, limit int) (Page, error) {
	contacts, next, err := salesforce.ListContactsAfter(ctx, s.client, after, limit)
	if err != nil {
		return Page{}, err
	}
	return Page{Entries: sfContacts(contacts), Next: next}, nil
}

func (s *Salesforce) SearchCompanies(ctx context.Context, token string) ([]Entry, error) {
	accounts, err := salesforce.SearchAccountsByName(ctx, s.client, token)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, Entry{
			ID:           a.ID,
			Name:         a.Name,
			LastActivity: a.LastActivityDate,
			LastModified: a.LastModifiedDate,
			Created:      a.CreatedDate,
		})
	}
	return entries, nil
}

func sfContacts(contacts []salesforce.Contact) []Entry {
	entries := make([]Entry, 0, len(contacts))
	for _, c := range contacts {
		entries = append(entries, Entry{
			ID:            c.ID,
			Name:          strings.TrimSpace(c.FirstName + " " + c.LastName),
			Email:         c.Email,
			LastContacted: c.LastActivityDate,
			LastModified:  c.LastModifiedDate,
		})
	}
	return entries
}
