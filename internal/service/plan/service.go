package plan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"trimplan/internal/domain"
	"trimplan/internal/domain/models"
	"trimplan/internal/domain/services"
)

// planService owns the one in-memory document of the process.
// Every mutation copies the current document, edits the copy, normalizes
// it and swaps it in under mu, then persists it.
type planService struct {
	mu              sync.Mutex
	doc             *models.Document
	store           *Store
	factory         *Factory
	normalizer      *Normalizer
	defaultDeadline string
	logger          *slog.Logger
}

// NewService loads the stored document (migrating legacy keys) or starts
// from defaults, and writes the result back under the current key.
// A nil factory uses the wall clock and random ids.
func NewService(
	ctx context.Context,
	store *Store,
	factory *Factory,
	defaultDeadline string,
	logger *slog.Logger,
) services.PlanService {
	if factory == nil {
		factory = NewFactory()
	}
	s := &planService{
		store:           store,
		factory:         factory,
		normalizer:      NewNormalizer(factory),
		defaultDeadline: defaultDeadline,
		logger:          logger,
	}

	raw, sourceKey, ok := store.Load(ctx)
	if !ok {
		s.logger.Debug("no stored plan, starting from defaults", "deadline", EffectiveDeadline(defaultDeadline))
		raw = factory.MakeDefaultDocument(defaultDeadline)
	} else if sourceKey != store.Key() {
		s.logger.Info("migrating stored plan",
			"from_key", sourceKey,
			"to_key", store.Key(),
			"schema_version", SchemaVersion,
		)
	}

	s.doc = s.normalizer.Normalize(raw)
	s.check(s.doc)
	store.Save(ctx, s.doc)
	return s
}

// Current returns a copy of the committed document
func (s *planService) Current() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Patch applies fn to a copy of the document and commits the normalized result
func (s *planService) Patch(ctx context.Context, fn func(doc *models.Document)) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	fn(next)
	return s.commitLocked(ctx, next, true), nil
}

// MergePatch applies an RFC 7396 merge patch to the whole document
func (s *planService) MergePatch(ctx context.Context, patch map[string]interface{}) (*models.Document, error) {
	if patch == nil {
		return nil, &domain.ValidationError{Message: "merge patch must be a JSON object"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := toGeneric(s.doc)
	return s.commitLocked(ctx, ApplyMergePatch(current, patch), true), nil
}

// Replace normalizes raw and makes it the current document
func (s *planService) Replace(ctx context.Context, raw interface{}) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, raw, false), nil
}

// Import parses r outside the lock and applies it in one replace
func (s *planService) Import(ctx context.Context, filename string, r io.Reader) (*models.Document, error) {
	raw, err := ImportJSON(filename, r)
	if err != nil {
		s.logger.Debug("import rejected", "file", filename, "error", err)
		return nil, err
	}

	doc, err := s.Replace(ctx, raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("plan imported",
		"file", filename,
		"videos", len(doc.Productions.Videos),
		"graphics", len(doc.Productions.Graphics),
		"weeks", len(doc.Weeks),
	)
	return doc, nil
}

// Export returns the pretty-printed JSON form of the current document
func (s *planService) Export() ([]byte, error) {
	return ExportJSON(s.Current())
}

// Reset replaces the document with defaults, keeping the current deadline
func (s *planService) Reset(ctx context.Context, confirm bool) (*models.Document, error) {
	if !confirm {
		return nil, fmt.Errorf("reset plan: %w", domain.ErrConfirmationRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.doc.Customer.Deadline
	if deadline == "" {
		deadline = s.defaultDeadline
	}
	doc := s.commitLocked(ctx, s.factory.MakeDefaultDocument(deadline), false)

	s.logger.Info("plan reset", "deadline", doc.Customer.Deadline)
	return doc, nil
}

// commitLocked normalizes raw, optionally stamps it, swaps it in and saves.
// Callers must hold mu.
func (s *planService) commitLocked(ctx context.Context, raw interface{}, stamp bool) *models.Document {
	doc := s.normalizer.Normalize(raw)
	if stamp {
		doc.Meta.UpdatedAt = formatTimestamp(s.factory.Now())
	}
	s.check(doc)

	s.doc = doc
	s.store.Save(ctx, doc)
	return doc.Clone()
}

// check logs documents that break the normalizer's guarantees
func (s *planService) check(doc *models.Document) {
	if err := ValidateDocument(doc); err != nil {
		s.logger.Error("normalized plan failed validation", "error", err)
	}
}
