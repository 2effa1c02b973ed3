package plan

import (
	"encoding/json"

	"trimplan/internal/domain/models"
)

// Normalizer reshapes arbitrary stored or imported values into the current
// document schema. It keeps every caller-provided value of the right shape
// and fills everything else from a freshly built default document.
//
// Normalize never fails and is idempotent: Normalize(Normalize(x)) equals
// Normalize(x) for every x.
type Normalizer struct {
	factory *Factory
}

// NewNormalizer creates a normalizer that draws defaults from factory
func NewNormalizer(factory *Factory) *Normalizer {
	return &Normalizer{factory: factory}
}

var defaultNormalizer = NewNormalizer(defaultFactory)

// Normalize is Normalizer.Normalize using the wall clock and random ids
func Normalize(raw interface{}) *models.Document {
	return defaultNormalizer.Normalize(raw)
}

// Normalize returns a schema-valid document built from raw.
//
// Accepted inputs are decoded JSON values, raw JSON bytes and documents.
// Anything that is not an object yields the default document.
func (n *Normalizer) Normalize(raw interface{}) *models.Document {
	input, ok := toGeneric(raw)
	if !ok {
		return n.factory.MakeDefaultDocument(FallbackDeadline)
	}

	deadline := ""
	if customer, ok := asObject(input["customer"]); ok {
		deadline, _ = customer["deadline"].(string)
	}
	base := n.factory.MakeDefaultDocument(deadline)

	// Documents written before publishing moved onto each production carry
	// a single top-level plan; it seeds every production that lacks one.
	legacyPublishing, _ := asObject(input["publishing"])

	doc := &models.Document{
		Meta:          mergeMeta(base.Meta, input["meta"]),
		Customer:      mergeCustomer(base.Customer, input["customer"]),
		Strategy:      mergeStrategy(base.Strategy, input["strategy"]),
		Logistics:     mergeLogistics(base.Logistics, input["logistics"]),
		Equipment:     mergeEquipment(base.Equipment, input["equipment"]),
		Documentation: mergeDocumentation(base.Documentation, input["documentation"]),
	}

	productions, _ := asObject(input["productions"])

	// Videos and graphics share one id space since weeks link to both
	productionIDs := make(map[string]struct{})

	doc.Productions.Videos = n.decodeVideos(productions["videos"], legacyPublishing, productionIDs)
	if len(doc.Productions.Videos) == 0 {
		doc.Productions.Videos = base.Productions.Videos
		for i := range doc.Productions.Videos {
			v := &doc.Productions.Videos[i]
			v.ID = n.claimID(v.ID, productionIDs)
			v.Publishing = resolvePublishing(nil, legacyPublishing)
		}
	}

	doc.Productions.Graphics = n.decodeGraphics(productions["graphics"], legacyPublishing, productionIDs)
	if len(doc.Productions.Graphics) == 0 {
		doc.Productions.Graphics = base.Productions.Graphics
		for i := range doc.Productions.Graphics {
			g := &doc.Productions.Graphics[i]
			g.ID = n.claimID(g.ID, productionIDs)
			g.Publishing = resolvePublishing(nil, legacyPublishing)
		}
	}

	doc.Weeks = n.decodeWeeks(input["weeks"], make(map[string]struct{}))
	if len(doc.Weeks) == 0 {
		doc.Weeks = base.Weeks
	}

	return doc
}

// toGeneric converts raw into a decoded JSON object.
// Typed documents are re-marshalled so they take the same path as stored data.
func toGeneric(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		return v, true
	case json.RawMessage:
		return decodeObject(v)
	case []byte:
		return decodeObject(v)
	case models.Document:
		return marshalObject(&v)
	case *models.Document:
		if v == nil {
			return nil, false
		}
		return marshalObject(v)
	default:
		return nil, false
	}
}

func decodeObject(data []byte) (map[string]interface{}, bool) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, false
	}
	return asObject(decoded)
}

func marshalObject(v interface{}) (map[string]interface{}, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return decodeObject(data)
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	return obj, ok && obj != nil
}

// str returns obj[key] when it is a string, fallback otherwise
func str(obj map[string]interface{}, key, fallback string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return fallback
}

// flag returns obj[key] when it is a bool, fallback otherwise
func flag(obj map[string]interface{}, key string, fallback bool) bool {
	if b, ok := obj[key].(bool); ok {
		return b
	}
	return fallback
}

func mergeMeta(base models.Meta, raw interface{}) models.Meta {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	return models.Meta{
		Title:     str(obj, "title", base.Title),
		CreatedAt: str(obj, "createdAt", base.CreatedAt),
		UpdatedAt: str(obj, "updatedAt", base.UpdatedAt),
		OwnerName: str(obj, "ownerName", base.OwnerName),
	}
}

func mergeCustomer(base models.Customer, raw interface{}) models.Customer {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	return models.Customer{
		Name:            str(obj, "name", base.Name),
		Contact:         str(obj, "contact", base.Contact),
		ProjectName:     str(obj, "projectName", base.ProjectName),
		Deadline:        str(obj, "deadline", base.Deadline),
		Brief:           str(obj, "brief", base.Brief),
		SuccessCriteria: str(obj, "successCriteria", base.SuccessCriteria),
		TargetAudience:  str(obj, "targetAudience", base.TargetAudience),
		Channels:        str(obj, "channels", base.Channels),
	}
}

func mergeStrategy(base models.Strategy, raw interface{}) models.Strategy {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	return models.Strategy{
		Concept:      str(obj, "concept", base.Concept),
		KeyMessage:   str(obj, "keyMessage", base.KeyMessage),
		ToneAndStyle: str(obj, "toneAndStyle", base.ToneAndStyle),
		HookIdeas:    str(obj, "hookIdeas", base.HookIdeas),
		Structure:    str(obj, "structure", base.Structure),
		References:   str(obj, "references", base.References),
	}
}

func mergeLogistics(base models.Logistics, raw interface{}) models.Logistics {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	return models.Logistics{
		MainLocation:     str(obj, "mainLocation", base.MainLocation),
		ContactsToClear:  str(obj, "contactsToClear", base.ContactsToClear),
		ClassroomOrRoom:  str(obj, "classroomOrRoom", base.ClassroomOrRoom),
		TeachersOrTalent: str(obj, "teachersOrTalent", base.TeachersOrTalent),
		Assistants:       str(obj, "assistants", base.Assistants),
		Permissions:      str(obj, "permissions", base.Permissions),
	}
}

// mergeEquipment merges one level deeper than its siblings: the availability
// flags are merged flag by flag.
func mergeEquipment(base models.Equipment, raw interface{}) models.Equipment {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	merged := models.Equipment{
		Available:       base.Available,
		ExtraToBring:    str(obj, "extraToBring", base.ExtraToBring),
		PreflightChecks: str(obj, "preflightChecks", base.PreflightChecks),
	}
	if available, ok := asObject(obj["available"]); ok {
		merged.Available = models.EquipmentAvailability{
			IPhone17ProMax: flag(available, "iphone17ProMax", base.Available.IPhone17ProMax),
			DJIMics:        flag(available, "djiMics", base.Available.DJIMics),
			DJIGimbal:      flag(available, "djiGimbal", base.Available.DJIGimbal),
			MobileLight:    flag(available, "mobileLight", base.Available.MobileLight),
		}
	}
	return merged
}

func mergeDocumentation(base models.Documentation, raw interface{}) models.Documentation {
	obj, ok := asObject(raw)
	if !ok {
		return base
	}
	return models.Documentation{
		LogPlan:           str(obj, "logPlan", base.LogPlan),
		FileStructure:     str(obj, "fileStructure", base.FileStructure),
		NamingConventions: str(obj, "namingConventions", base.NamingConventions),
		BackupPlan:        str(obj, "backupPlan", base.BackupPlan),
	}
}

// resolvePublishing picks the item's own plan, then the legacy document-level
// plan, then the default. The chosen source is laid over a fresh default so
// the result is always fully populated and never shared between items.
func resolvePublishing(own interface{}, legacy map[string]interface{}) models.PublishingPlan {
	source, ok := asObject(own)
	if !ok {
		source = legacy
	}

	plan := DefaultPublishing()
	if source == nil {
		return plan
	}
	return models.PublishingPlan{
		OverallPlan: str(source, "overallPlan", plan.OverallPlan),
		Platforms:   str(source, "platforms", plan.Platforms),
		Cadence:     str(source, "cadence", plan.Cadence),
		Approvals:   str(source, "approvals", plan.Approvals),
		Roles:       str(source, "roles", plan.Roles),
		Metrics:     str(source, "metrics", plan.Metrics),
		Notes:       str(source, "notes", plan.Notes),
	}
}

func resolveStatus(raw interface{}) models.ProductionStatus {
	if s, ok := raw.(string); ok {
		if status := models.ProductionStatus(s); status.IsValid() {
			return status
		}
	}
	return models.StatusPlanned
}

// itemID keeps a non-empty, not yet used string id, otherwise allocates a new one
func (n *Normalizer) itemID(obj map[string]interface{}, seen map[string]struct{}) string {
	return n.claimID(str(obj, "id", ""), seen)
}

func (n *Normalizer) claimID(id string, seen map[string]struct{}) string {
	if _, dup := seen[id]; id == "" || dup {
		id = n.factory.NewID()
	}
	seen[id] = struct{}{}
	return id
}

func (n *Normalizer) decodeVideos(raw interface{}, legacy map[string]interface{}, seen map[string]struct{}) []models.VideoPlan {
	list, _ := raw.([]interface{})
	videos := make([]models.VideoPlan, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		videos = append(videos, models.VideoPlan{
			ID:               n.itemID(obj, seen),
			Title:            str(obj, "title", ""),
			Goal:             str(obj, "goal", ""),
			Deliverables:     str(obj, "deliverables", ""),
			Formats:          str(obj, "formats", ""),
			Concept:          str(obj, "concept", ""),
			HookIdeas:        str(obj, "hookIdeas", ""),
			Structure:        str(obj, "structure", ""),
			ToneAndStyle:     str(obj, "toneAndStyle", ""),
			Locations:        str(obj, "locations", ""),
			ShootDays:        decodeShootDays(obj["shootDays"]),
			InterviewGuide:   str(obj, "interviewGuide", ""),
			Questions:        str(obj, "questions", ""),
			CameraSetup:      str(obj, "cameraSetup", ""),
			BrollList:        str(obj, "brollList", ""),
			FreepikImagePlan: str(obj, "freepikImagePlan", ""),
			FreepikVideoPlan: str(obj, "freepikVideoPlan", ""),
			Notes:            str(obj, "notes", ""),
			Publishing:       resolvePublishing(obj["publishing"], legacy),
			Status:           resolveStatus(obj["status"]),
		})
	}
	return videos
}

func (n *Normalizer) decodeGraphics(raw interface{}, legacy map[string]interface{}, seen map[string]struct{}) []models.GraphicPlan {
	list, _ := raw.([]interface{})
	graphics := make([]models.GraphicPlan, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		graphics = append(graphics, models.GraphicPlan{
			ID:               n.itemID(obj, seen),
			Title:            str(obj, "title", ""),
			Goal:             str(obj, "goal", ""),
			Deliverables:     str(obj, "deliverables", ""),
			Formats:          str(obj, "formats", ""),
			StyleGuide:       str(obj, "styleGuide", ""),
			AssetsNeeded:     str(obj, "assetsNeeded", ""),
			ShootDays:        decodeShootDays(obj["shootDays"]),
			FreepikImagePlan: str(obj, "freepikImagePlan", ""),
			FreepikVideoPlan: str(obj, "freepikVideoPlan", ""),
			Notes:            str(obj, "notes", ""),
			Publishing:       resolvePublishing(obj["publishing"], legacy),
			Status:           resolveStatus(obj["status"]),
		})
	}
	return graphics
}

func (n *Normalizer) decodeWeeks(raw interface{}, seen map[string]struct{}) []models.WeekEntry {
	list, _ := raw.([]interface{})
	weeks := make([]models.WeekEntry, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		weeks = append(weeks, models.WeekEntry{
			ID:                   n.itemID(obj, seen),
			WeekStart:            str(obj, "weekStart", ""),
			WeekLabel:            str(obj, "weekLabel", ""),
			Focus:                str(obj, "focus", ""),
			Deliverables:         str(obj, "deliverables", ""),
			CustomerAndApprovals: str(obj, "customerAndApprovals", ""),
			ProductionWork:       str(obj, "productionWork", ""),
			FreepikImageWork:     str(obj, "freepikImageWork", ""),
			FreepikVideoWork:     str(obj, "freepikVideoWork", ""),
			ShootDays:            decodeShootDays(obj["shootDays"]),
			Risks:                str(obj, "risks", ""),
			LinkedProductionIDs:  decodeLinkedIDs(obj["linkedProductionIds"]),
		})
	}
	return weeks
}

func decodeShootDays(raw interface{}) []models.ShootDay {
	list, _ := raw.([]interface{})
	days := make([]models.ShootDay, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		days = append(days, models.ShootDay{
			Date:     str(obj, "date", ""),
			Location: str(obj, "location", ""),
			CallTime: str(obj, "callTime", ""),
			Notes:    str(obj, "notes", ""),
		})
	}
	return days
}

// decodeLinkedIDs keeps string ids only, dropping duplicates but keeping order
func decodeLinkedIDs(raw interface{}) []string {
	list, _ := raw.([]interface{})
	ids := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, item := range list {
		id, ok := item.(string)
		if !ok || id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
