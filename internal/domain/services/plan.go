package services

import (
	"context"
	"io"

	"trimplan/internal/domain/models"
)

// PlanService defines the operations the presentation layer may perform on
// the planning document. Every mutation is normalized and persisted before
// it returns.
type PlanService interface {
	// Current returns a copy of the committed document
	Current() *models.Document

	// Patch applies fn to a copy of the document and commits the normalized result
	Patch(ctx context.Context, fn func(doc *models.Document)) (*models.Document, error)

	// MergePatch applies an RFC 7396 merge patch to the whole document
	MergePatch(ctx context.Context, patch map[string]interface{}) (*models.Document, error)

	// Replace swaps in an arbitrary raw value (import, PUT) after normalization
	Replace(ctx context.Context, raw interface{}) (*models.Document, error)

	// Import parses a user-supplied JSON file and replaces the document with it.
	// Parse failures are returned as *domain.ImportError.
	Import(ctx context.Context, filename string, r io.Reader) (*models.Document, error)

	// Export returns the pretty-printed JSON form of the current document
	Export() ([]byte, error)

	// Reset replaces the document with fresh defaults. Requires confirm.
	Reset(ctx context.Context, confirm bool) (*models.Document, error)

	AddVideo(ctx context.Context) (*models.VideoPlan, error)
	AddGraphic(ctx context.Context) (*models.GraphicPlan, error)
	AddWeek(ctx context.Context) (*models.WeekEntry, error)

	// UpdateItem merge-patches a single video, graphic or week by id
	UpdateItem(ctx context.Context, kind models.ProductionKind, id string, patch map[string]interface{}) (*models.Document, error)

	// DeleteProduction removes a video or graphic and prunes week links that no longer resolve
	DeleteProduction(ctx context.Context, id string, confirm bool) (*models.Document, error)

	// DeleteWeek removes a week entry and prunes week links that no longer resolve
	DeleteWeek(ctx context.Context, id string, confirm bool) (*models.Document, error)

	// SetWeekLink links or unlinks a production from a week (set semantics)
	SetWeekLink(ctx context.Context, weekID, productionID string, linked bool) (*models.Document, error)

	// AddShootDay appends an empty shoot day to a video, graphic or week
	AddShootDay(ctx context.Context, kind models.ProductionKind, id string) (*models.Document, error)

	// UpdateShootDay merge-patches the shoot day at index of a video, graphic or week
	UpdateShootDay(ctx context.Context, kind models.ProductionKind, id string, index int, patch map[string]interface{}) (*models.Document, error)

	// RemoveShootDay removes the shoot day at index from a video, graphic or week
	RemoveShootDay(ctx context.Context, kind models.ProductionKind, id string, index int) (*models.Document, error)
}
