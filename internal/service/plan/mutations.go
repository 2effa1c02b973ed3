package plan

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"trimplan/internal/domain"
	"trimplan/internal/domain/models"
)

// AddVideo appends a new video with defaults
func (s *planService) AddVideo(ctx context.Context) (*models.VideoPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	video := s.factory.NewVideo()
	next := s.doc.Clone()
	next.Productions.Videos = append(next.Productions.Videos, video)

	doc := s.commitLocked(ctx, next, true)
	if i := doc.FindVideo(video.ID); i >= 0 {
		return &doc.Productions.Videos[i], nil
	}
	return nil, notFound(models.KindVideo, video.ID)
}

// AddGraphic appends a new graphic with defaults
func (s *planService) AddGraphic(ctx context.Context) (*models.GraphicPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	graphic := s.factory.NewGraphic()
	next := s.doc.Clone()
	next.Productions.Graphics = append(next.Productions.Graphics, graphic)

	doc := s.commitLocked(ctx, next, true)
	if i := doc.FindGraphic(graphic.ID); i >= 0 {
		return &doc.Productions.Graphics[i], nil
	}
	return nil, notFound(models.KindGraphic, graphic.ID)
}

// AddWeek appends a new week starting next Monday
func (s *planService) AddWeek(ctx context.Context) (*models.WeekEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	week := s.factory.NewWeek()
	next := s.doc.Clone()
	next.Weeks = append(next.Weeks, week)

	doc := s.commitLocked(ctx, next, true)
	if i := doc.FindWeek(week.ID); i >= 0 {
		return &doc.Weeks[i], nil
	}
	return nil, notFound(models.KindWeek, week.ID)
}

// UpdateItem merge-patches one video, graphic or week. The id cannot be changed.
func (s *planService) UpdateItem(ctx context.Context, kind models.ProductionKind, id string, patch map[string]interface{}) (*models.Document, error) {
	if patch == nil {
		return nil, &domain.ValidationError{Message: "merge patch must be a JSON object"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := toGeneric(s.doc)
	item, err := locateItem(current, kind, id)
	if err != nil {
		return nil, err
	}

	merged, _ := ApplyMergePatch(item, patch).(map[string]interface{})
	merged["id"] = id
	clear(item)
	maps.Copy(item, merged)

	return s.commitLocked(ctx, current, true), nil
}

// DeleteProduction removes a video or graphic and unlinks it from every week
func (s *planService) DeleteProduction(ctx context.Context, id string, confirm bool) (*models.Document, error) {
	if !confirm {
		return nil, fmt.Errorf("delete production %s: %w", id, domain.ErrConfirmationRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if i := next.FindVideo(id); i >= 0 {
		next.Productions.Videos = slices.Delete(next.Productions.Videos, i, i+1)
	} else if i := next.FindGraphic(id); i >= 0 {
		next.Productions.Graphics = slices.Delete(next.Productions.Graphics, i, i+1)
	} else {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("production not found: %s", id)}
	}

	pruneDanglingLinks(next)

	s.logger.Debug("production deleted", "id", id)
	return s.commitLocked(ctx, next, true), nil
}

// DeleteWeek removes a week entry
func (s *planService) DeleteWeek(ctx context.Context, id string, confirm bool) (*models.Document, error) {
	if !confirm {
		return nil, fmt.Errorf("delete week %s: %w", id, domain.ErrConfirmationRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := next.FindWeek(id)
	if i < 0 {
		return nil, notFound(models.KindWeek, id)
	}
	next.Weeks = slices.Delete(next.Weeks, i, i+1)
	pruneDanglingLinks(next)

	s.logger.Debug("week deleted", "id", id)
	return s.commitLocked(ctx, next, true), nil
}

// SetWeekLink adds or removes productionID from a week's links.
// Linking requires the production to exist; unlinking never does.
func (s *planService) SetWeekLink(ctx context.Context, weekID, productionID string, linked bool) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	i := next.FindWeek(weekID)
	if i < 0 {
		return nil, notFound(models.KindWeek, weekID)
	}

	week := &next.Weeks[i]
	if linked {
		if _, ok := next.ProductionTitle(productionID); !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("production not found: %s", productionID)}
		}
		if !slices.Contains(week.LinkedProductionIDs, productionID) {
			week.LinkedProductionIDs = append(week.LinkedProductionIDs, productionID)
		}
	} else {
		week.LinkedProductionIDs = slices.DeleteFunc(week.LinkedProductionIDs, func(id string) bool {
			return id == productionID
		})
	}

	return s.commitLocked(ctx, next, true), nil
}

// AddShootDay appends an empty shoot day to a video, graphic or week
func (s *planService) AddShootDay(ctx context.Context, kind models.ProductionKind, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	days, err := shootDaysOf(next, kind, id)
	if err != nil {
		return nil, err
	}
	*days = append(*days, NewShootDay())

	return s.commitLocked(ctx, next, true), nil
}

// UpdateShootDay merge-patches the shoot day at index
func (s *planService) UpdateShootDay(ctx context.Context, kind models.ProductionKind, id string, index int, patch map[string]interface{}) (*models.Document, error) {
	if patch == nil {
		return nil, &domain.ValidationError{Message: "merge patch must be a JSON object"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := toGeneric(s.doc)
	item, err := locateItem(current, kind, id)
	if err != nil {
		return nil, err
	}

	days, _ := item["shootDays"].([]interface{})
	if index < 0 || index >= len(days) {
		return nil, shootDayNotFound(kind, id, index)
	}
	days[index] = ApplyMergePatch(days[index], patch)

	return s.commitLocked(ctx, current, true), nil
}

// RemoveShootDay removes the shoot day at index
func (s *planService) RemoveShootDay(ctx context.Context, kind models.ProductionKind, id string, index int) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	days, err := shootDaysOf(next, kind, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(*days) {
		return nil, shootDayNotFound(kind, id, index)
	}
	*days = slices.Delete(*days, index, index+1)

	return s.commitLocked(ctx, next, true), nil
}

// locateItem finds the decoded item with id in the list named by kind.
// The returned map aliases doc, so edits to it land in doc.
func locateItem(doc map[string]interface{}, kind models.ProductionKind, id string) (map[string]interface{}, error) {
	var list []interface{}
	switch kind {
	case models.KindVideo, models.KindGraphic:
		productions, _ := asObject(doc["productions"])
		list, _ = productions[string(kind)].([]interface{})
	case models.KindWeek:
		list, _ = doc["weeks"].([]interface{})
	default:
		return nil, invalidKind(kind)
	}

	for _, entry := range list {
		if obj, ok := asObject(entry); ok && obj["id"] == id {
			return obj, nil
		}
	}
	return nil, notFound(kind, id)
}

// shootDaysOf returns a pointer to the shoot day list of the item with id
func shootDaysOf(doc *models.Document, kind models.ProductionKind, id string) (*[]models.ShootDay, error) {
	switch kind {
	case models.KindVideo:
		if i := doc.FindVideo(id); i >= 0 {
			return &doc.Productions.Videos[i].ShootDays, nil
		}
	case models.KindGraphic:
		if i := doc.FindGraphic(id); i >= 0 {
			return &doc.Productions.Graphics[i].ShootDays, nil
		}
	case models.KindWeek:
		if i := doc.FindWeek(id); i >= 0 {
			return &doc.Weeks[i].ShootDays, nil
		}
	default:
		return nil, invalidKind(kind)
	}
	return nil, notFound(kind, id)
}

func notFound(kind models.ProductionKind, id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("%s not found: %s", kindLabel(kind), id)}
}

func shootDayNotFound(kind models.ProductionKind, id string, index int) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("shoot day %d not found on %s %s", index, kindLabel(kind), id)}
}

func invalidKind(kind models.ProductionKind) error {
	return &domain.ValidationError{Message: fmt.Sprintf("unknown item kind %q", kind)}
}

func kindLabel(kind models.ProductionKind) string {
	switch kind {
	case models.KindVideo:
		return "video"
	case models.KindGraphic:
		return "graphic"
	case models.KindWeek:
		return "week"
	}
	return string(kind)
}

// pruneDanglingLinks drops week links that no longer resolve to a production,
// including ones that arrived through an import.
func pruneDanglingLinks(doc *models.Document) {
	for i := range doc.Weeks {
		doc.Weeks[i].LinkedProductionIDs = slices.DeleteFunc(doc.Weeks[i].LinkedProductionIDs, func(linked string) bool {
			_, ok := doc.ProductionTitle(linked)
			return !ok
		})
	}
}
