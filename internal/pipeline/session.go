// Package pipeline ties one operator session together: prompt, completion,
// CRM annotation and the sheet write.
package pipeline

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/dedup"
	"github.com/csbb5959/sales-challenge-tool/internal/model"
	"github.com/csbb5959/sales-challenge-tool/internal/prospect"
	"github.com/csbb5959/sales-challenge-tool/internal/sheet"
)

// SearchRequest selects the prompt and the CRM checks.
type SearchRequest struct {
	Kind   prospect.Kind
	Count  int
	Custom string
	dedup.Options
}

// SearchResult is what a search hands to the operator.
type SearchResult struct {
	Prompt string
	Raw    string
	// Proposed is the number of parsed candidates before filtering.
	Proposed   int
	Candidates []model.Candidate
	// Known are the candidates removed by the only-new-in-CRM filter.
	Known []model.Candidate
}

// AllKnown reports whether the filter removed every proposal.
func (r SearchResult) AllKnown() bool {
	return len(r.Candidates) == 0 && len(r.Known) > 0
}

// Session runs searches and commits for one operator run.
type Session struct {
	ID string

	catalog   *prospect.Catalog
	generator *prospect.Generator
	engine    *dedup.Engine
	writer    *sheet.Writer
	log       *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithWriter sets the sheet writer used by Commit.
func WithWriter(w *sheet.Writer) Option {
	return func(s *Session) { s.writer = w }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// New creates a Session. A nil engine skips CRM annotation.
func New(catalog *prospect.Catalog, gen *prospect.Generator, engine *dedup.Engine, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		catalog:   catalog,
		generator: gen,
		engine:    engine,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = zap.L().With(zap.String("session_id", s.ID))
	return s
}

// Search renders the prompt, asks the model and annotates the proposals.
// Only a prompt or completion failure is returned as an error; CRM problems
// degrade to "no match" inside the engine.
func (s *Session) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	prompt, err := s.catalog.Render(req.Kind, req.Count, req.Custom)
	if err != nil {
		return nil, err
	}

	candidates, raw, err := s.generator.Propose(ctx, prompt)
	if err != nil {
		s.log.Error("pipeline: search failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: search")
	}

	res := &SearchResult{
		Prompt:     prompt,
		Raw:        raw,
		Proposed:   len(candidates),
		Candidates: candidates,
	}
	if s.engine != nil {
		out := s.engine.Annotate(ctx, candidates, req.Options)
		res.Candidates, res.Known = out.Kept, out.Known
	}

	s.log.Info("pipeline: search complete",
		zap.String("prompt_kind", string(req.Kind)),
		zap.Int("proposed", res.Proposed),
		zap.Int("kept", len(res.Candidates)),
		zap.Int("known", len(res.Known)),
	)
	return res, nil
}

// Commit stamps the operator's group and member onto every candidate and
// writes the ones the sheet does not yet contain.
func (s *Session) Commit(ctx context.Context, candidates []model.Candidate, meta model.Metadata) (sheet.Result, error) {
	if s.writer == nil {
		return sheet.Result{}, eris.New("pipeline: no sheet writer configured")
	}

	stamped := Stamp(candidates, meta)
	res, err := s.writer.WriteNew(ctx, stamped)
	if err != nil {
		return res, eris.Wrap(err, "pipeline: commit")
	}
	s.log.Info("pipeline: commit complete",
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// Stamp returns copies of candidates with the non-empty group and member
// from meta applied.
func Stamp(candidates []model.Candidate, meta model.Metadata) []model.Candidate {
	out := make([]model.Candidate, len(candidates))
	copy(out, candidates)
	group, member := strings.TrimSpace(meta.Group), strings.TrimSpace(meta.Member)
	for i := range out {
		if group != "" {
			out[i].Meta.Group = group
		}
		if member != "" {
			out[i].Meta.Member = member
		}
	}
	return out
}
