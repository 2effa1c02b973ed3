package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"trimplan/internal/config"
	"trimplan/internal/domain"
	"trimplan/internal/domain/models"
	"trimplan/internal/domain/repositories"
)

const (
	// SchemaVersion is the document layout persisted under StorageKey
	SchemaVersion = 2

	// StorageKey is where the current document lives
	StorageKey = "trim-plan-v2"

	// ExportFileName is the suggested download name for JSON exports
	ExportFileName = "trim-produksjonsplan.json"
)

// LegacyStorageKeys are read, newest first, when StorageKey is empty.
// A document found there is normalized and rewritten under StorageKey;
// the legacy entry is left in place.
var LegacyStorageKeys = []string{"trim-plan-v1"}

// Store persists the planning document in a key/value backend.
// Reads degrade to "nothing stored" and writes are best effort: neither
// ever interrupts editing.
type Store struct {
	storage    repositories.PlanStorage
	logger     *slog.Logger
	key        string
	legacyKeys []string
}

// NewStore creates a store over storage using the current schema keys
func NewStore(storage repositories.PlanStorage, logger *slog.Logger) *Store {
	return &Store{
		storage:    storage,
		logger:     logger,
		key:        StorageKey,
		legacyKeys: LegacyStorageKeys,
	}
}

// Key returns the storage key documents are written to
func (s *Store) Key() string {
	return s.key
}

// Load reads the stored document in its raw decoded form.
// sourceKey reports which key it came from so callers can detect a migration.
// ok is false when nothing usable is stored.
func (s *Store) Load(ctx context.Context) (raw interface{}, sourceKey string, ok bool) {
	for _, key := range append([]string{s.key}, s.legacyKeys...) {
		data, err := s.storage.Get(ctx, key)
		if err != nil {
			s.logger.Warn("failed to read stored plan",
				"backend", s.storage.Name(),
				"key", key,
				"error", err,
			)
			return nil, "", false
		}
		if data == nil {
			continue
		}

		if err := json.Unmarshal(data, &raw); err != nil {
			s.logger.Warn("stored plan is not valid JSON",
				"backend", s.storage.Name(),
				"key", key,
				"error", err,
			)
			return nil, "", false
		}
		return raw, key, true
	}
	return nil, "", false
}

// Write serializes doc and stores it under the current key
func (s *Store) Write(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := s.storage.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("write plan to %s: %w", s.storage.Name(), err)
	}
	return nil
}

// Save is Write with failures logged and swallowed
func (s *Store) Save(ctx context.Context, doc *models.Document) {
	if err := s.Write(ctx, doc); err != nil {
		s.logger.Warn("failed to save plan",
			"backend", s.storage.Name(),
			"key", s.key,
			"error", err,
		)
	}
}

// ExportJSON renders doc exactly as held, indented by two spaces
func ExportJSON(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

// ImportJSON parses a user-supplied file without normalizing it.
// Unreadable, oversized or malformed input yields a *domain.ImportError.
func ImportJSON(filename string, r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(io.LimitReader(r, config.MaxImportBytes+1))
	if err != nil {
		return nil, &domain.ImportError{Filename: filename, Err: fmt.Errorf("read file: %w", err)}
	}
	if len(data) > config.MaxImportBytes {
		return nil, &domain.ImportError{
			Filename: filename,
			Err:      fmt.Errorf("file exceeds %d bytes", config.MaxImportBytes),
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &domain.ImportError{Filename: filename, Err: fmt.Errorf("file is empty")}
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ImportError{Filename: filename, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return raw, nil
}
