package plan

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"trimplan/internal/domain/models"
)

var statusValues = func() []interface{} {
	values := make([]interface{}, len(models.ProductionStatuses))
	for i, s := range models.ProductionStatuses {
		values[i] = s
	}
	return values
}()

// ValidateDocument checks the structural guarantees every normalized
// document provides. A non-nil result means the normalizer has a bug; user
// input alone can never produce one.
func ValidateDocument(doc *models.Document) error {
	if doc == nil {
		return errors.New("document is nil")
	}

	productionIDs := make([]string, 0, len(doc.Productions.Videos)+len(doc.Productions.Graphics))
	for _, v := range doc.Productions.Videos {
		productionIDs = append(productionIDs, v.ID)
	}
	for _, g := range doc.Productions.Graphics {
		productionIDs = append(productionIDs, g.ID)
	}
	weekIDs := make([]string, 0, len(doc.Weeks))
	for _, w := range doc.Weeks {
		weekIDs = append(weekIDs, w.ID)
	}

	return validation.Errors{
		"videos": validation.Validate(doc.Productions.Videos,
			validation.Required,
			validation.Each(validation.By(validateVideo)),
		),
		"graphics": validation.Validate(doc.Productions.Graphics,
			validation.Required,
			validation.Each(validation.By(validateGraphic)),
		),
		"productions": validation.Validate(productionIDs, validation.By(uniqueStrings)),
		"weeks": validation.Validate(doc.Weeks,
			validation.Required,
			validation.Each(validation.By(validateWeek)),
		),
		"weekIds": validation.Validate(weekIDs, validation.By(uniqueStrings)),
	}.Filter()
}

func validateVideo(value interface{}) error {
	v, ok := value.(models.VideoPlan)
	if !ok {
		return fmt.Errorf("unexpected type %T", value)
	}
	return validation.ValidateStruct(&v,
		validation.Field(&v.ID, validation.Required),
		validation.Field(&v.ShootDays, validation.NotNil),
		validation.Field(&v.Status, validation.Required, validation.In(statusValues...)),
	)
}

func validateGraphic(value interface{}) error {
	g, ok := value.(models.GraphicPlan)
	if !ok {
		return fmt.Errorf("unexpected type %T", value)
	}
	return validation.ValidateStruct(&g,
		validation.Field(&g.ID, validation.Required),
		validation.Field(&g.ShootDays, validation.NotNil),
		validation.Field(&g.Status, validation.Required, validation.In(statusValues...)),
	)
}

func validateWeek(value interface{}) error {
	w, ok := value.(models.WeekEntry)
	if !ok {
		return fmt.Errorf("unexpected type %T", value)
	}
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.ShootDays, validation.NotNil),
		validation.Field(&w.LinkedProductionIDs, validation.NotNil, validation.By(uniqueStrings)),
	)
}

func uniqueStrings(value interface{}) error {
	ids, ok := value.([]string)
	if !ok {
		return fmt.Errorf("unexpected type %T", value)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
