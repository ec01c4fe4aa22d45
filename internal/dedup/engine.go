// Package dedup annotates candidates with what the CRM already knows about
// them and optionally drops the ones it knows.
package dedup

import (
	"context"

	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/directory"
	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

// Matcher is the subset of directory.Matcher the engine needs.
type Matcher interface {
	LookupOrg(ctx context.Context, companyName string) directory.Result[model.OrgMatch]
	LookupContact(ctx context.Context, email, companyName string) directory.Result[model.DirectoryMatch]
}

// Options are the operator-controlled switches.
type Options struct {
	// SearchContacts also looks up a CRM contact person per candidate.
	SearchContacts bool
	// OnlyNewInCRM drops candidates whose organization the CRM already knows.
	OnlyNewInCRM bool
}

// Outcome partitions an annotated batch.
type Outcome struct {
	// Kept are the candidates to display and write, in input order.
	Kept []model.Candidate
	// Known are the candidates dropped by OnlyNewInCRM, annotated like Kept.
	Known []model.Candidate
}

// Engine runs the CRM checks for a batch.
type Engine struct {
	matcher Matcher
}

// NewEngine creates an Engine over m.
func NewEngine(m Matcher) *Engine {
	return &Engine{matcher: m}
}

// Annotate looks up every candidate in the CRM, in input order, and stamps
// the results onto copies of the input records. The organization lookup
// always runs; the contact lookup runs only with SearchContacts and only for
// candidates that survive the OnlyNewInCRM filter.
func (e *Engine) Annotate(ctx context.Context, candidates []model.Candidate, opts Options) Outcome {
	out := Outcome{Kept: make([]model.Candidate, 0, len(candidates))}

	for _, c := range candidates {
		org := e.matcher.LookupOrg(ctx, c.TrimmedName())
		if m := org.Found(); m != nil {
			c.OrgLastContact = model.Str(m.LastActivity)
		} else {
			c.OrgLastContact = model.Str(model.NoContactFound)
		}

		if opts.OnlyNewInCRM && org.Found() != nil {
			zap.L().Debug("dedup: dropped, organization known to crm",
				zap.String("company", c.Name),
				zap.String("last_contact", model.Deref(c.OrgLastContact)),
			)
			out.Known = append(out.Known, c)
			continue
		}

		if opts.SearchContacts {
			e.stampContact(ctx, &c)
		}
		out.Kept = append(out.Kept, c)
	}

	zap.L().Info("dedup: batch annotated",
		zap.Int("candidates", len(candidates)),
		zap.Int("kept", len(out.Kept)),
		zap.Int("known", len(out.Known)),
		zap.Bool("search_contacts", opts.SearchContacts),
		zap.Bool("only_new_in_crm", opts.OnlyNewInCRM),
	)
	return out
}

// stampContact replaces the scraped email with the CRM contact person when
// one is found.
func (e *Engine) stampContact(ctx context.Context, c *model.Candidate) {
	res := e.matcher.LookupContact(ctx, c.Email, c.TrimmedName())
	m := res.Found()
	if m == nil {
		c.PersonLastContact = model.Str(model.NoContactPersonFound)
		return
	}

	name := m.Name
	if name == "" {
		name = c.Name
	}
	c.ContactName = model.Str(name)
	if m.Email != "" {
		c.Email = m.Email
	}
	c.PersonLastContact = model.Str(m.Date)
}
