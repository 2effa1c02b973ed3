package plan

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"trimplan/internal/domain"
	"trimplan/internal/domain/models"
	"trimplan/internal/domain/services"
	"trimplan/internal/repository/memory"
)

type serviceFixture struct {
	svc     services.PlanService
	storage *memory.PlanStorage
	clock   *testClock
}

func newServiceFixture(t *testing.T, stored map[string]string) *serviceFixture {
	t.Helper()
	ctx := context.Background()

	storage := memory.NewPlanStorage()
	for key, value := range stored {
		if err := storage.Put(ctx, key, []byte(value)); err != nil {
			t.Fatal(err)
		}
	}

	factory, clock := newTestFactory()
	svc := NewService(ctx, NewStore(storage, discardLogger()), factory, "2026-06-01", discardLogger())
	return &serviceFixture{svc: svc, storage: storage, clock: clock}
}

// stored decodes what the backend holds under the current key
func (f *serviceFixture) stored(t *testing.T) *models.Document {
	t.Helper()
	data, err := f.storage.Get(context.Background(), StorageKey)
	if err != nil || data == nil {
		t.Fatalf("nothing stored under %s (err=%v)", StorageKey, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("stored plan is not valid JSON: %v", err)
	}
	return &doc
}

func TestNewService_StartsFromDefaults(t *testing.T) {
	f := newServiceFixture(t, nil)

	doc := f.svc.Current()
	if doc.Customer.Deadline != "2026-06-01" {
		t.Errorf("deadline = %q", doc.Customer.Deadline)
	}
	if err := ValidateDocument(doc); err != nil {
		t.Errorf("ValidateDocument() error = %v", err)
	}
	if f.stored(t).Meta.CreatedAt != doc.Meta.CreatedAt {
		t.Errorf("default document was not persisted")
	}
}

func TestNewService_MigratesLegacyKey(t *testing.T) {
	f := newServiceFixture(t, map[string]string{
		"trim-plan-v1": `{"customer": {"name": "Acme", "deadline": "2025-01-01"}, "publishing": {"platforms": "X"}}`,
	})

	doc := f.svc.Current()
	if doc.Customer.Name != "Acme" {
		t.Errorf("customer name = %q, want Acme", doc.Customer.Name)
	}
	if doc.Productions.Videos[0].Publishing.Platforms != "X" {
		t.Errorf("legacy publishing was not carried onto productions")
	}

	if got := f.stored(t); got.Customer.Name != "Acme" {
		t.Errorf("migrated plan not written under %s", StorageKey)
	}
	legacy, _ := f.storage.Get(context.Background(), "trim-plan-v1")
	if legacy == nil {
		t.Errorf("legacy entry must be left in place")
	}
}

func TestService_CurrentReturnsCopy(t *testing.T) {
	f := newServiceFixture(t, nil)

	doc := f.svc.Current()
	doc.Customer.Name = "mutated"
	doc.Productions.Videos[0].ShootDays = append(doc.Productions.Videos[0].ShootDays, models.ShootDay{Date: "x"})

	again := f.svc.Current()
	if again.Customer.Name == "mutated" || len(again.Productions.Videos[0].ShootDays) != 0 {
		t.Errorf("Current() leaked internal state")
	}
}

func TestService_PatchStampsUpdatedAt(t *testing.T) {
	f := newServiceFixture(t, nil)
	created := f.svc.Current().Meta.CreatedAt

	f.clock.now = f.clock.now.Add(time.Hour)
	doc, err := f.svc.Patch(context.Background(), func(doc *models.Document) {
		doc.Customer.Name = "Acme"
	})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	if doc.Customer.Name != "Acme" {
		t.Errorf("name = %q", doc.Customer.Name)
	}
	if doc.Meta.CreatedAt != created {
		t.Errorf("createdAt changed")
	}
	if doc.Meta.UpdatedAt != "2026-02-04T11:30:00.000Z" {
		t.Errorf("updatedAt = %q", doc.Meta.UpdatedAt)
	}
	if f.stored(t).Customer.Name != "Acme" {
		t.Errorf("patch was not persisted")
	}
}

func TestService_PatchIsNormalized(t *testing.T) {
	f := newServiceFixture(t, nil)

	doc, _ := f.svc.Patch(context.Background(), func(doc *models.Document) {
		doc.Productions.Videos = nil
		doc.Weeks = nil
	})
	if len(doc.Productions.Videos) != 1 || len(doc.Weeks) != 1 {
		t.Errorf("empty lists must be refilled, got videos=%d weeks=%d", len(doc.Productions.Videos), len(doc.Weeks))
	}
}

func TestService_MergePatch(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()

	doc, err := f.svc.MergePatch(ctx, map[string]interface{}{
		"customer":  map[string]interface{}{"name": "Acme"},
		"equipment": map[string]interface{}{"available": map[string]interface{}{"djiMics": false}},
	})
	if err != nil {
		t.Fatalf("MergePatch() error = %v", err)
	}
	if doc.Customer.Name != "Acme" || doc.Customer.Deadline != "2026-06-01" {
		t.Errorf("customer = %+v", doc.Customer)
	}
	if doc.Equipment.Available.DJIMics || !doc.Equipment.Available.DJIGimbal {
		t.Errorf("availability = %+v", doc.Equipment.Available)
	}

	if _, err := f.svc.MergePatch(ctx, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("MergePatch(nil) error = %v, want validation error", err)
	}
}

func TestService_ReplaceDoesNotStamp(t *testing.T) {
	f := newServiceFixture(t, nil)
	f.clock.now = f.clock.now.Add(time.Hour)

	doc, err := f.svc.Replace(context.Background(), map[string]interface{}{
		"meta": map[string]interface{}{"updatedAt": "2020-01-01T00:00:00.000Z"},
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if doc.Meta.UpdatedAt != "2020-01-01T00:00:00.000Z" {
		t.Errorf("updatedAt = %q, want the imported value", doc.Meta.UpdatedAt)
	}
}

func TestService_Import(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()

	doc, err := f.svc.Import(ctx, "plan.json", strings.NewReader(`{"customer": {"name": "Imported"}}`))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if doc.Customer.Name != "Imported" {
		t.Errorf("name = %q", doc.Customer.Name)
	}

	_, err = f.svc.Import(ctx, "broken.json", strings.NewReader(`{"customer": `))
	var importErr *domain.ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("Import() error = %v, want ImportError", err)
	}
	if f.svc.Current().Customer.Name != "Imported" {
		t.Errorf("failed import must leave the document unchanged")
	}
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	_, _ = f.svc.Patch(ctx, func(doc *models.Document) { doc.Customer.Name = "Acme" })
	before := f.svc.Current()

	data, err := f.svc.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	_, _ = f.svc.Patch(ctx, func(doc *models.Document) { doc.Customer.Name = "changed" })

	after, err := f.svc.Import(ctx, ExportFileName, strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	a, _ := json.Marshal(before)
	b, _ := json.Marshal(after)
	if string(a) != string(b) {
		t.Errorf("round trip changed the document\nbefore: %s\nafter:  %s", a, b)
	}
}

func TestService_Reset(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	_, _ = f.svc.Patch(ctx, func(doc *models.Document) {
		doc.Customer.Name = "Acme"
		doc.Customer.Deadline = "2026-09-01"
	})

	if _, err := f.svc.Reset(ctx, false); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("Reset(false) error = %v, want ErrConfirmationRequired", err)
	}
	if f.svc.Current().Customer.Name != "Acme" {
		t.Fatalf("unconfirmed reset changed the document")
	}

	doc, err := f.svc.Reset(ctx, true)
	if err != nil {
		t.Fatalf("Reset(true) error = %v", err)
	}
	if doc.Customer.Name != "" {
		t.Errorf("name = %q, want cleared", doc.Customer.Name)
	}
	if doc.Customer.Deadline != "2026-09-01" {
		t.Errorf("deadline = %q, want kept", doc.Customer.Deadline)
	}
}

func TestService_AddItems(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()

	video, err := f.svc.AddVideo(ctx)
	if err != nil {
		t.Fatalf("AddVideo() error = %v", err)
	}
	graphic, err := f.svc.AddGraphic(ctx)
	if err != nil {
		t.Fatalf("AddGraphic() error = %v", err)
	}
	week, err := f.svc.AddWeek(ctx)
	if err != nil {
		t.Fatalf("AddWeek() error = %v", err)
	}

	doc := f.svc.Current()
	if len(doc.Productions.Videos) != 2 || doc.Productions.Videos[1].ID != video.ID {
		t.Errorf("video not appended")
	}
	if len(doc.Productions.Graphics) != 2 || doc.Productions.Graphics[1].ID != graphic.ID {
		t.Errorf("graphic not appended")
	}
	if len(doc.Weeks) != 2 || doc.Weeks[1].ID != week.ID || week.WeekStart != "2026-02-09" {
		t.Errorf("week not appended: %+v", week)
	}
}

func TestService_UpdateItem(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	id := f.svc.Current().Productions.Videos[0].ID

	doc, err := f.svc.UpdateItem(ctx, models.KindVideo, id, map[string]interface{}{
		"id":         "hijack",
		"title":      "Intro",
		"status":     "bogus",
		"publishing": map[string]interface{}{"cadence": "daily"},
	})
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	video := doc.Productions.Videos[0]
	if video.ID != id {
		t.Errorf("id = %q, want %q", video.ID, id)
	}
	if video.Title != "Intro" {
		t.Errorf("title = %q", video.Title)
	}
	if video.Status != models.StatusPlanned {
		t.Errorf("status = %q, want planned", video.Status)
	}
	if video.Publishing.Cadence != "daily" || video.Publishing.Platforms != DefaultPlatforms {
		t.Errorf("publishing = %+v, want merged", video.Publishing)
	}
}

func TestService_UpdateItemErrors(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	patch := map[string]interface{}{"title": "x"}

	tests := []struct {
		name    string
		kind    models.ProductionKind
		id      string
		patch   map[string]interface{}
		wantErr error
	}{
		{"unknown id", models.KindGraphic, "missing", patch, domain.ErrNotFound},
		{"unknown kind", models.ProductionKind("audio"), "x", patch, domain.ErrValidation},
		{"nil patch", models.KindWeek, "x", nil, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.UpdateItem(ctx, tt.kind, tt.id, tt.patch); !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_DeleteProductionPrunesLinks(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()

	video, _ := f.svc.AddVideo(ctx)
	week, _ := f.svc.AddWeek(ctx)
	keep := f.svc.Current().Productions.Graphics[0].ID
	firstWeek := f.svc.Current().Weeks[0].ID

	for _, weekID := range []string{firstWeek, week.ID} {
		for _, id := range []string{video.ID, keep} {
			if _, err := f.svc.SetWeekLink(ctx, weekID, id, true); err != nil {
				t.Fatalf("SetWeekLink() error = %v", err)
			}
		}
	}

	if _, err := f.svc.DeleteProduction(ctx, video.ID, false); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("DeleteProduction(confirm=false) error = %v", err)
	}
	if f.svc.Current().FindVideo(video.ID) < 0 {
		t.Fatalf("unconfirmed delete removed the video")
	}

	doc, err := f.svc.DeleteProduction(ctx, video.ID, true)
	if err != nil {
		t.Fatalf("DeleteProduction() error = %v", err)
	}
	if doc.FindVideo(video.ID) >= 0 {
		t.Errorf("video still present")
	}
	for _, w := range doc.Weeks {
		if len(w.LinkedProductionIDs) != 1 || w.LinkedProductionIDs[0] != keep {
			t.Errorf("week %s links = %v, want [%s]", w.ID, w.LinkedProductionIDs, keep)
		}
	}

	if _, err := f.svc.DeleteProduction(ctx, video.ID, true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestService_DeletionDropsImportedDanglingLinks(t *testing.T) {
	const imported = `{
		"productions": {
			"videos": [{"id": "v1"}, {"id": "v2"}],
			"graphics": [{"id": "g1"}]
		},
		"weeks": [
			{"id": "w1", "linkedProductionIds": ["v1", "ghost", "g1"]},
			{"id": "w2", "linkedProductionIds": ["gone", "v2"]}
		]
	}`

	tests := []struct {
		name      string
		delete    func(ctx context.Context, svc services.PlanService) (*models.Document, error)
		wantLinks map[string][]string
	}{
		{
			name: "delete production",
			delete: func(ctx context.Context, svc services.PlanService) (*models.Document, error) {
				return svc.DeleteProduction(ctx, "v2", true)
			},
			wantLinks: map[string][]string{"w1": {"v1", "g1"}, "w2": {}},
		},
		{
			name: "delete week",
			delete: func(ctx context.Context, svc services.PlanService) (*models.Document, error) {
				return svc.DeleteWeek(ctx, "w2", true)
			},
			wantLinks: map[string][]string{"w1": {"v1", "g1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, nil)
			ctx := context.Background()

			doc, err := f.svc.Import(ctx, "plan.json", strings.NewReader(imported))
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if got := doc.Weeks[0].LinkedProductionIDs; len(got) != 3 {
				t.Fatalf("import must keep links as given, got %v", got)
			}

			doc, err = tt.delete(ctx, f.svc)
			if err != nil {
				t.Fatalf("delete error = %v", err)
			}
			if len(doc.Weeks) != len(tt.wantLinks) {
				t.Fatalf("weeks = %d, want %d", len(doc.Weeks), len(tt.wantLinks))
			}
			for _, w := range doc.Weeks {
				if !slices.Equal(w.LinkedProductionIDs, tt.wantLinks[w.ID]) {
					t.Errorf("week %s links = %v, want %v", w.ID, w.LinkedProductionIDs, tt.wantLinks[w.ID])
				}
			}
		})
	}
}

func TestService_DeleteLastItemsRefills(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	doc := f.svc.Current()

	doc, err := f.svc.DeleteProduction(ctx, doc.Productions.Graphics[0].ID, true)
	if err != nil {
		t.Fatalf("DeleteProduction() error = %v", err)
	}
	if len(doc.Productions.Graphics) != 1 {
		t.Errorf("graphics = %d, want a fresh default", len(doc.Productions.Graphics))
	}

	doc, err = f.svc.DeleteWeek(ctx, doc.Weeks[0].ID, true)
	if err != nil {
		t.Fatalf("DeleteWeek() error = %v", err)
	}
	if len(doc.Weeks) != 1 {
		t.Errorf("weeks = %d, want a fresh default", len(doc.Weeks))
	}
}

func TestService_DeleteWeek(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	week, _ := f.svc.AddWeek(ctx)

	if _, err := f.svc.DeleteWeek(ctx, week.ID, false); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Errorf("DeleteWeek(confirm=false) error = %v", err)
	}
	doc, err := f.svc.DeleteWeek(ctx, week.ID, true)
	if err != nil {
		t.Fatalf("DeleteWeek() error = %v", err)
	}
	if doc.FindWeek(week.ID) >= 0 || len(doc.Weeks) != 1 {
		t.Errorf("week not removed")
	}
	if _, err := f.svc.DeleteWeek(ctx, "missing", true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteWeek(missing) error = %v", err)
	}
}

func TestService_SetWeekLink(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	doc := f.svc.Current()
	weekID, videoID := doc.Weeks[0].ID, doc.Productions.Videos[0].ID

	for i := 0; i < 2; i++ {
		doc, _ = f.svc.SetWeekLink(ctx, weekID, videoID, true)
	}
	if got := doc.Weeks[0].LinkedProductionIDs; len(got) != 1 || got[0] != videoID {
		t.Errorf("links = %v, want [%s]", got, videoID)
	}

	if _, err := f.svc.SetWeekLink(ctx, weekID, "missing", true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("linking unknown production error = %v", err)
	}
	if _, err := f.svc.SetWeekLink(ctx, "missing", videoID, true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("linking on unknown week error = %v", err)
	}

	doc, err := f.svc.SetWeekLink(ctx, weekID, "missing", false)
	if err != nil {
		t.Errorf("unlinking an absent id error = %v", err)
	}
	doc, _ = f.svc.SetWeekLink(ctx, weekID, videoID, false)
	if len(doc.Weeks[0].LinkedProductionIDs) != 0 {
		t.Errorf("links = %v, want empty", doc.Weeks[0].LinkedProductionIDs)
	}
}

func TestService_ShootDays(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()
	doc := f.svc.Current()

	items := []struct {
		kind models.ProductionKind
		id   string
		days func(*models.Document) []models.ShootDay
	}{
		{models.KindVideo, doc.Productions.Videos[0].ID, func(d *models.Document) []models.ShootDay { return d.Productions.Videos[0].ShootDays }},
		{models.KindGraphic, doc.Productions.Graphics[0].ID, func(d *models.Document) []models.ShootDay { return d.Productions.Graphics[0].ShootDays }},
		{models.KindWeek, doc.Weeks[0].ID, func(d *models.Document) []models.ShootDay { return d.Weeks[0].ShootDays }},
	}

	for _, item := range items {
		t.Run(string(item.kind), func(t *testing.T) {
			_, _ = f.svc.AddShootDay(ctx, item.kind, item.id)
			doc, err := f.svc.AddShootDay(ctx, item.kind, item.id)
			if err != nil {
				t.Fatalf("AddShootDay() error = %v", err)
			}
			if got := item.days(doc); len(got) != 2 || got[0] != (models.ShootDay{}) {
				t.Fatalf("shoot days = %+v, want two empty days", got)
			}

			doc, err = f.svc.UpdateShootDay(ctx, item.kind, item.id, 1, map[string]interface{}{
				"date":     "2026-02-10",
				"location": "Aula",
			})
			if err != nil {
				t.Fatalf("UpdateShootDay() error = %v", err)
			}
			if got := item.days(doc)[1]; got.Date != "2026-02-10" || got.Location != "Aula" {
				t.Errorf("updated day = %+v", got)
			}

			doc, err = f.svc.RemoveShootDay(ctx, item.kind, item.id, 0)
			if err != nil {
				t.Fatalf("RemoveShootDay() error = %v", err)
			}
			if got := item.days(doc); len(got) != 1 || got[0].Location != "Aula" {
				t.Errorf("shoot days after removal = %+v", got)
			}

			if _, err := f.svc.RemoveShootDay(ctx, item.kind, item.id, 5); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("RemoveShootDay(out of range) error = %v", err)
			}
			if _, err := f.svc.UpdateShootDay(ctx, item.kind, item.id, -1, map[string]interface{}{}); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("UpdateShootDay(-1) error = %v", err)
			}
		})
	}

	if _, err := f.svc.AddShootDay(ctx, models.KindVideo, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("AddShootDay(missing) error = %v", err)
	}
}

func TestService_SaveFailureDoesNotBlockEditing(t *testing.T) {
	ctx := context.Background()
	factory, _ := newTestFactory()
	svc := NewService(ctx, NewStore(failingStorage{}, discardLogger()), factory, "", discardLogger())

	doc, err := svc.Patch(ctx, func(doc *models.Document) { doc.Customer.Name = "Acme" })
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if doc.Customer.Name != "Acme" || svc.Current().Customer.Name != "Acme" {
		t.Errorf("edit lost when persistence fails")
	}
	if doc.Customer.Deadline != FallbackDeadline {
		t.Errorf("deadline = %q, want fallback", doc.Customer.Deadline)
	}
}
