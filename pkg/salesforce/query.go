package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Contact represents a Salesforce Contact record.
type Contact struct {
	ID               string `json:"Id" salesforce:"Id"`
	FirstName        string `json:"FirstName" salesforce:"FirstName"`
	LastName         string `json:"LastName" salesforce:"LastName"`
	Email            string `json:"Email" salesforce:"Email"`
	LastActivityDate string `json:"LastActivityDate" salesforce:"LastActivityDate"`
	LastModifiedDate string `json:"LastModifiedDate" salesforce:"LastModifiedDate"`
}

// Account represents a Salesforce Account record.
type Account struct {
	ID               string `json:"Id" salesforce:"Id"`
	Name             string `json:"Name" salesforce:"Name"`
	Website          string `json:"Website" salesforce:"Website"`
	LastActivityDate string `json:"LastActivityDate" salesforce:"LastActivityDate"`
	LastModifiedDate string `json:"LastModifiedDate" salesforce:"LastModifiedDate"`
	CreatedDate      string `json:"CreatedDate" salesforce:"CreatedDate"`
}

var contactFields = []string{
	"Id", "FirstName", "LastName", "Email", "LastActivityDate", "LastModifiedDate",
}

var accountFields = []string{
	"Id", "Name", "Website", "LastActivityDate", "LastModifiedDate", "CreatedDate",
}

// maxAccountMatches caps the Account name search.
const maxAccountMatches = 200

// FindContactsByEmail returns Contacts whose Email equals email.
func FindContactsByEmail(ctx context.Context, c Client, email string) ([]Contact, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Contact WHERE Email = '%s' ORDER BY LastModifiedDate DESC LIMIT 1",
		strings.Join(contactFields, ", "),
		escapeSoql(email),
	)

	var contacts []Contact
	if err := c.Query(ctx, soql, &contacts); err != nil {
		return nil, eris.Wrapf(err, "sf: find contacts by email %s", email)
	}
	return contacts, nil
}

// ListContactsAfter returns up to limit Contacts ordered by Id, starting
// after the given Id (keyset pagination). The returned cursor is "" when
// no further page exists.
func ListContactsAfter(ctx context.Context, c Client, afterID string, limit int) ([]Contact, string, error) {
	where := ""
	if afterID != "" {
		where = fmt.Sprintf(" WHERE Id > '%s'", escapeSoql(afterID))
	}
	soql := fmt.Sprintf(
		"SELECT %s FROM Contact%s ORDER BY Id LIMIT %d",
		strings.Join(contactFields, ", "),
		where,
		limit,
	)

	var contacts []Contact
	if err := c.Query(ctx, soql, &contacts); err != nil {
		return nil, "", eris.Wrap(err, "sf: list contacts")
	}

	next := ""
	if limit > 0 && len(contacts) == limit {
		next = contacts[len(contacts)-1].ID
	}
	return contacts, next, nil
}

// SearchAccountsByName returns Accounts whose Name contains token.
func SearchAccountsByName(ctx context.Context, c Client, token string) ([]Account, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Account WHERE Name LIKE '%%%s%%' LIMIT %d",
		strings.Join(accountFields, ", "),
		escapeLike(token),
		maxAccountMatches,
	)

	var accounts []Account
	if err := c.Query(ctx, soql, &accounts); err != nil {
		return nil, eris.Wrapf(err, "sf: search accounts by name %s", token)
	}
	return accounts, nil
}

// escapeSoql escapes backslashes and single quotes in SOQL string literals.
func escapeSoql(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// escapeLike additionally escapes the LIKE wildcards.
func escapeLike(s string) string {
	s = escapeSoql(s)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
