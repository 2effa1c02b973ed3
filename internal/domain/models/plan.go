package models

// ProductionStatus is the workflow state of a single production item
type ProductionStatus string

const (
	StatusIdea       ProductionStatus = "idea"
	StatusPlanned    ProductionStatus = "planned"
	StatusInProgress ProductionStatus = "in_progress"
	StatusReview     ProductionStatus = "review"
	StatusApproved   ProductionStatus = "approved"
	StatusPublished  ProductionStatus = "published"
	StatusDone       ProductionStatus = "done"
)

// ProductionStatuses lists every valid status in workflow order
var ProductionStatuses = []ProductionStatus{
	StatusIdea,
	StatusPlanned,
	StatusInProgress,
	StatusReview,
	StatusApproved,
	StatusPublished,
	StatusDone,
}

// IsValid reports whether s is one of the known statuses
func (s ProductionStatus) IsValid() bool {
	for _, known := range ProductionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ShootDay is a planned recording day, owned positionally by its parent list
type ShootDay struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Location string `json:"location"`
	CallTime string `json:"callTime"` // e.g. 09:00
	Notes    string `json:"notes"`
}

// PublishingPlan describes distribution and approval for one production
type PublishingPlan struct {
	OverallPlan string `json:"overallPlan"`
	Platforms   string `json:"platforms"`
	Cadence     string `json:"cadence"`
	Approvals   string `json:"approvals"`
	Roles       string `json:"roles"`
	Metrics     string `json:"metrics"`
	Notes       string `json:"notes"`
}

// VideoPlan is one planned video deliverable
type VideoPlan struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Goal         string `json:"goal"`
	Deliverables string `json:"deliverables"`
	Formats      string `json:"formats"`

	Concept      string `json:"concept"`
	HookIdeas    string `json:"hookIdeas"`
	Structure    string `json:"structure"`
	ToneAndStyle string `json:"toneAndStyle"`

	Locations string     `json:"locations"`
	ShootDays []ShootDay `json:"shootDays"`

	InterviewGuide string `json:"interviewGuide"`
	Questions      string `json:"questions"`
	CameraSetup    string `json:"cameraSetup"`
	BrollList      string `json:"brollList"`

	FreepikImagePlan string `json:"freepikImagePlan"`
	FreepikVideoPlan string `json:"freepikVideoPlan"`

	Notes string `json:"notes"`

	Publishing PublishingPlan   `json:"publishing"`
	Status     ProductionStatus `json:"status"`
}

// GraphicPlan is one planned graphic deliverable
type GraphicPlan struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Goal         string `json:"goal"`
	Deliverables string `json:"deliverables"`
	Formats      string `json:"formats"`

	StyleGuide   string `json:"styleGuide"`
	AssetsNeeded string `json:"assetsNeeded"`

	ShootDays []ShootDay `json:"shootDays"`

	FreepikImagePlan string `json:"freepikImagePlan"`
	FreepikVideoPlan string `json:"freepikVideoPlan"`

	Notes string `json:"notes"`

	Publishing PublishingPlan   `json:"publishing"`
	Status     ProductionStatus `json:"status"`
}

// WeekEntry is the log for one calendar week of work.
// LinkedProductionIDs holds weak references to video/graphic ids.
type WeekEntry struct {
	ID        string `json:"id"`
	WeekStart string `json:"weekStart"` // YYYY-MM-DD (Monday)
	WeekLabel string `json:"weekLabel"`

	Focus        string `json:"focus"`
	Deliverables string `json:"deliverables"`

	CustomerAndApprovals string `json:"customerAndApprovals"`
	ProductionWork       string `json:"productionWork"`

	FreepikImageWork string `json:"freepikImageWork"`
	FreepikVideoWork string `json:"freepikVideoWork"`

	ShootDays []ShootDay `json:"shootDays"`
	Risks     string     `json:"risks"`

	LinkedProductionIDs []string `json:"linkedProductionIds"`
}

// Meta holds document bookkeeping
type Meta struct {
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	OwnerName string `json:"ownerName"`
}

// Customer is the customer brief for the whole engagement
type Customer struct {
	Name            string `json:"name"`
	Contact         string `json:"contact"`
	ProjectName     string `json:"projectName"`
	Deadline        string `json:"deadline"`
	Brief           string `json:"brief"`
	SuccessCriteria string `json:"successCriteria"`
	TargetAudience  string `json:"targetAudience"`
	Channels        string `json:"channels"`
}

// Strategy is the overall concept shared by all productions
type Strategy struct {
	Concept      string `json:"concept"`
	KeyMessage   string `json:"keyMessage"`
	ToneAndStyle string `json:"toneAndStyle"`
	HookIdeas    string `json:"hookIdeas"`
	Structure    string `json:"structure"`
	References   string `json:"references"`
}

// Logistics covers locations, people and permissions
type Logistics struct {
	MainLocation     string `json:"mainLocation"`
	ContactsToClear  string `json:"contactsToClear"`
	ClassroomOrRoom  string `json:"classroomOrRoom"`
	TeachersOrTalent string `json:"teachersOrTalent"`
	Assistants       string `json:"assistants"`
	Permissions      string `json:"permissions"`
}

// EquipmentAvailability flags the fixed set of gear items
type EquipmentAvailability struct {
	IPhone17ProMax bool `json:"iphone17ProMax"`
	DJIMics        bool `json:"djiMics"`
	DJIGimbal      bool `json:"djiGimbal"`
	MobileLight    bool `json:"mobileLight"`
}

// Equipment is gear availability plus free-text extras and checklist
type Equipment struct {
	Available       EquipmentAvailability `json:"available"`
	ExtraToBring    string                `json:"extraToBring"`
	PreflightChecks string                `json:"preflightChecks"`
}

// Documentation covers logging, file naming and backup routines
type Documentation struct {
	LogPlan           string `json:"logPlan"`
	FileStructure     string `json:"fileStructure"`
	NamingConventions string `json:"namingConventions"`
	BackupPlan        string `json:"backupPlan"`
}

// Productions holds the two ordered production lists
type Productions struct {
	Videos   []VideoPlan   `json:"videos"`
	Graphics []GraphicPlan `json:"graphics"`
}

// Document is the full planning record for one customer engagement
type Document struct {
	Meta          Meta          `json:"meta"`
	Customer      Customer      `json:"customer"`
	Strategy      Strategy      `json:"strategy"`
	Logistics     Logistics     `json:"logistics"`
	Equipment     Equipment     `json:"equipment"`
	Documentation Documentation `json:"documentation"`
	Productions   Productions   `json:"productions"`
	Weeks         []WeekEntry   `json:"weeks"`
}

// ProductionKind distinguishes the two production lists
type ProductionKind string

const (
	KindVideo   ProductionKind = "videos"
	KindGraphic ProductionKind = "graphics"
	KindWeek    ProductionKind = "weeks"
)

// ParseProductionKind maps a route segment to a kind
func ParseProductionKind(s string) (ProductionKind, bool) {
	switch k := ProductionKind(s); k {
	case KindVideo, KindGraphic, KindWeek:
		return k, true
	}
	return "", false
}

// FindVideo returns the index of the video with the given id, or -1
func (d *Document) FindVideo(id string) int {
	for i := range d.Productions.Videos {
		if d.Productions.Videos[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGraphic returns the index of the graphic with the given id, or -1
func (d *Document) FindGraphic(id string) int {
	for i := range d.Productions.Graphics {
		if d.Productions.Graphics[i].ID == id {
			return i
		}
	}
	return -1
}

// FindWeek returns the index of the week with the given id, or -1
func (d *Document) FindWeek(id string) int {
	for i := range d.Weeks {
		if d.Weeks[i].ID == id {
			return i
		}
	}
	return -1
}

// ProductionTitle resolves a production id to its title for display.
// Returns false when the id does not reference an existing production.
func (d *Document) ProductionTitle(id string) (string, bool) {
	if i := d.FindVideo(id); i >= 0 {
		return d.Productions.Videos[i].Title, true
	}
	if i := d.FindGraphic(id); i >= 0 {
		return d.Productions.Graphics[i].Title, true
	}
	return "", false
}

// Clone returns a deep copy of d
func (d *Document) Clone() *Document {
	out := *d
	out.Productions.Videos = make([]VideoPlan, len(d.Productions.Videos))
	for i, v := range d.Productions.Videos {
		v.ShootDays = cloneShootDays(v.ShootDays)
		out.Productions.Videos[i] = v
	}
	out.Productions.Graphics = make([]GraphicPlan, len(d.Productions.Graphics))
	for i, g := range d.Productions.Graphics {
		g.ShootDays = cloneShootDays(g.ShootDays)
		out.Productions.Graphics[i] = g
	}
	out.Weeks = make([]WeekEntry, len(d.Weeks))
	for i, w := range d.Weeks {
		w.ShootDays = cloneShootDays(w.ShootDays)
		w.LinkedProductionIDs = append([]string{}, w.LinkedProductionIDs...)
		out.Weeks[i] = w
	}
	return &out
}

func cloneShootDays(days []ShootDay) []ShootDay {
	return append([]ShootDay{}, days...)
}
