package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

// ContactPageSize is the page size of the full contact scan.
const ContactPageSize = 100

// Matcher selects the best CRM entry for a candidate. All CRM failures are
// absorbed into the returned Result; nothing is retried.
type Matcher struct {
	dir     Directory
	breaker *resilience.CircuitBreaker
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithBreaker routes every directory call through cb.
func WithBreaker(cb *resilience.CircuitBreaker) MatcherOption {
	return func(m *Matcher) {
		m.breaker = cb
	}
}

// NewMatcher creates a Matcher over dir.
func NewMatcher(dir Directory, opts ...MatcherOption) *Matcher {
	m := &Matcher{dir: dir}
	for _, o := range opts {
		o(m)
	}
	return m
}

// LookupContact finds a contact person by exact email, falling back to a
// scan of the full contact directory for emails containing the company's
// core token.
func (m *Matcher) LookupContact(ctx context.Context, email, companyName string) Result[model.DirectoryMatch] {
	var lastErr error

	if email = strings.TrimSpace(email); email != "" {
		entries, err := resilience.ExecuteVal(ctx, m.breaker, func(ctx context.Context) ([]Entry, error) {
			return m.dir.FindContactsByEmail(ctx, email)
		})
		switch {
		case err != nil:
			logFailure("contact_email", email, err)
			lastErr = err
		case len(entries) > 0:
			match := contactMatch(entries[0])
			zap.L().Debug("directory: contact matched by email",
				zap.String("email", email),
				zap.String("contact", match.Name),
			)
			return found(match)
		}
	}

	if token := coreToken(companyName); token != "" {
		res := m.scanContacts(ctx, token)
		if res.Status == StatusFound {
			return res
		}
		if res.Err != nil {
			lastErr = res.Err
		}
	}

	if lastErr != nil {
		return transportError[model.DirectoryMatch](lastErr)
	}
	return notFound[model.DirectoryMatch]()
}

// scanContacts pages through every contact and keeps the match with the
// latest date. A failure mid-scan keeps the best match seen so far.
func (m *Matcher) scanContacts(ctx context.Context, token string) Result[model.DirectoryMatch] {
	var best *model.DirectoryMatch
	after := ""
	pages := 0

	for {
		page, err := resilience.ExecuteVal(ctx, m.breaker, func(ctx context.Context) (Page, error) {
			return m.dir.ListContacts(ctx, after, ContactPageSize)
		})
		if err != nil {
			logFailure("contact_scan", token, err)
			if best == nil {
				return transportError[model.DirectoryMatch](err)
			}
			break
		}
		pages++

		for _, e := range page.Entries {
			if !strings.Contains(fold(e.Email), token) {
				continue
			}
			match := contactMatch(e)
			if best == nil || (match.Date != "" && match.Date > best.Date) {
				best = &match
			}
		}

		if page.Next == "" {
			break
		}
		after = page.Next
	}

	if best == nil {
		zap.L().Debug("directory: no contact for token", zap.String("token", token), zap.Int("pages", pages))
		return notFound[model.DirectoryMatch]()
	}
	zap.L().Debug("directory: contact matched by token",
		zap.String("token", token),
		zap.String("email", best.Email),
		zap.Int("pages", pages),
	)
	return found(*best)
}

// LookupOrg finds the CRM company that best matches companyName: highest
// token overlap first, then the most recent date among the ties.
func (m *Matcher) LookupOrg(ctx context.Context, companyName string) Result[model.OrgMatch] {
	tokens := nameTokens(companyName)
	if len(tokens) == 0 {
		return notFound[model.OrgMatch]()
	}
	first := tokens[0]

	entries, err := resilience.ExecuteVal(ctx, m.breaker, func(ctx context.Context) ([]Entry, error) {
		return m.dir.SearchCompanies(ctx, first)
	})
	if err != nil {
		logFailure("company", companyName, err)
		return transportError[model.OrgMatch](err)
	}

	best, ok := selectCompany(companyName, first, entries)
	if !ok {
		zap.L().Debug("directory: no company match", zap.String("company", companyName))
		return notFound[model.OrgMatch]()
	}

	match := model.OrgMatch{Name: best.Name, LastActivity: companyDateLabel(best)}
	if match.LastActivity == "" {
		match.LastActivity = model.NoDateFound
	}
	zap.L().Info("directory: company matched",
		zap.String("candidate", companyName),
		zap.String("crm_name", match.Name),
		zap.String("last_activity", match.LastActivity),
	)
	return found(match)
}

// selectCompany applies the whole-word filter, the overlap ranking and the
// date tie-break. Equal dates keep the first entry encountered.
func selectCompany(companyName, first string, entries []Entry) (Entry, bool) {
	query := tokenSet(companyName)

	var tied []Entry
	bestScore := -1
	for _, e := range entries {
		hit := tokenSet(e.Name)
		if _, ok := hit[first]; !ok {
			continue
		}
		score := overlap(query, hit)
		switch {
		case score > bestScore:
			bestScore = score
			tied = []Entry{e}
		case score == bestScore:
			tied = append(tied, e)
		}
	}
	if len(tied) == 0 {
		return Entry{}, false
	}

	best := tied[0]
	bestTime := bestCompanyTime(best)
	for _, e := range tied[1:] {
		if t := bestCompanyTime(e); t.After(bestTime) {
			best, bestTime = e, t
		}
	}
	return best, true
}

func contactMatch(e Entry) model.DirectoryMatch {
	return model.DirectoryMatch{
		Name:  strings.TrimSpace(e.Name),
		Email: e.Email,
		Date:  contactDate(e),
	}
}

func logFailure(kind, query string, err error) {
	zap.L().Warn("directory: lookup failed",
		zap.String("kind", kind),
		zap.String("query", query),
		zap.String("outcome", StatusTransportError.String()),
		zap.String("error_class", resilience.Classify(err)),
		zap.Error(err),
	)
}
