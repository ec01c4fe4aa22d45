package directory

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/csbb5959/sales-challenge-tool/pkg/hubspot"
)

var hubspotContactProps = []string{"firstname", "lastname", "email", "lastmodifieddate", "last_contacted"}

var hubspotCompanyProps = []string{"name", "last_activity_date", "lastmodifieddate", "createdate"}

// companySearchLimit caps the CONTAINS_TOKEN company search.
const companySearchLimit = 100

// HubSpot adapts a hubspot.Client to Directory.
type HubSpot struct {
	client hubspot.Client
}

// NewHubSpot wraps client.
func NewHubSpot(client hubspot.Client) *HubSpot {
	return &HubSpot{client: client}
}

// FindContactsByEmail searches contacts with email EQ.
func (h *HubSpot) FindContactsByEmail(ctx context.Context, email string) ([]Entry, error) {
	page, err := h.client.Search(ctx, hubspot.ObjectContacts, hubspot.SearchRequest{
		FilterGroups: []hubspot.FilterGroup{{Filters: []hubspot.Filter{
			{PropertyName: "email", Operator: hubspot.OperatorEQ, Value: email},
		}}},
		Properties: hubspotContactProps,
		Limit:      1,
	})
	if err != nil {
		return nil, eris.Wrap(err, "directory: hubspot contact search")
	}
	return hubspotContacts(page.Results), nil
}

// ListContacts lists one page of all contacts.
func (h *HubSpot) ListContacts(ctx context.Context, after string, limit int) (Page, error) {
	page, err := h.client.List(ctx, hubspot.ObjectContacts, hubspot.ListRequest{
		Limit:      limit,
		After:      after,
		Properties: hubspotContactProps,
	})
	if err != nil {
		return Page{}, eris.Wrap(err, "directory: hubspot contact list")
	}
	return Page{Entries: hubspotContacts(page.Results), Next: page.NextAfter()}, nil
}

// SearchCompanies searches companies with name CONTAINS_TOKEN token.
func (h *HubSpot) SearchCompanies(ctx context.Context, token string) ([]Entry, error) {
	page, err := h.client.Search(ctx, hubspot.ObjectCompanies, hubspot.SearchRequest{
		FilterGroups: []hubspot.FilterGroup{{Filters: []hubspot.Filter{
			{PropertyName: "name", Operator: hubspot.OperatorContainsToken, Value: token},
		}}},
		Properties: hubspotCompanyProps,
		Limit:      companySearchLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "directory: hubspot company search")
	}

	entries := make([]Entry, 0, len(page.Results))
	for _, o := range page.Results {
		p := o.Properties
		entries = append(entries, Entry{
			ID:           o.ID,
			Name:         p["name"],
			LastActivity: p["last_activity_date"],
			LastModified: p["lastmodifieddate"],
			Created:      p["createdate"],
		})
	}
	return entries, nil
}

func hubspotContacts(objs []hubspot.Object) []Entry {
	entries := make([]Entry, 0, len(objs))
	for _, o := range objs {
		p := o.Properties
		entries = append(entries, Entry{
			ID:            o.ID,
			Name:          strings.TrimSpace(p["firstname"] + " " + p["lastname"]),
			Email:         p["email"],
			LastContacted: p["last_contacted"],
			LastModified:  p["lastmodifieddate"],
		})
	}
	return entries
}
