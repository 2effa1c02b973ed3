package plan

import (
	"time"

	"github.com/google/uuid"

	"trimplan/internal/domain/models"
)

// FallbackDeadline is used whenever a document is built without a usable deadline
const FallbackDeadline = "2026-06-01"

// DefaultPlatforms pre-fills every new publishing plan
const DefaultPlatforms = "Instagram Reels, TikTok, YouTube Shorts, nettside"

const (
	defaultStructure  = "Hook → presentasjon → hovedinnhold → b-roll → outro/logo → CTA"
	starterWeekLabel  = "Uke (start)"
	newWeekLabel      = "Ny uke (sett uke-label)"
	defaultVideoTitle = "Video 1 – (skriv tittel)"
	defaultGfxTitle   = "Grafikk 1 – (skriv tittel)"
)

// Factory builds fresh documents and list items.
// Now and NewID are swappable so tests can pin the clock and ids.
type Factory struct {
	Now   func() time.Time
	NewID func() string
}

// NewFactory returns a factory backed by the wall clock and random UUIDs
func NewFactory() *Factory {
	return &Factory{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

var defaultFactory = NewFactory()

// MakeDefaultDocument builds a complete starter document using the wall clock.
// An empty or unparseable deadline is replaced by FallbackDeadline.
func MakeDefaultDocument(deadline string) *models.Document {
	return defaultFactory.MakeDefaultDocument(deadline)
}

// DefaultPublishing returns a new publishing plan with the default platform list
func DefaultPublishing() models.PublishingPlan {
	return models.PublishingPlan{
		Platforms: DefaultPlatforms,
	}
}

// EffectiveDeadline returns deadline when it is a valid date, FallbackDeadline otherwise
func EffectiveDeadline(deadline string) string {
	if _, ok := ParseDate(deadline, time.UTC); ok {
		return deadline
	}
	return FallbackDeadline
}

// MakeDefaultDocument builds a complete starter document: one video, one
// graphic and one week. Each production owns its own publishing plan.
func (f *Factory) MakeDefaultDocument(deadline string) *models.Document {
	deadline = EffectiveDeadline(deadline)
	now := formatTimestamp(f.Now())

	return &models.Document{
		Meta: models.Meta{
			Title:     "TRiM Produksjonsplan – Video + KI (Freepik)",
			CreatedAt: now,
			UpdatedAt: now,
			OwnerName: "",
		},
		Customer: models.Customer{
			Deadline: deadline,
			Channels: DefaultPlatforms,
		},
		Strategy: models.Strategy{
			Structure: defaultStructure,
		},
		Logistics: models.Logistics{
			MainLocation: "Bjørnholt VGS",
			Permissions:  "Samtykke • filming • musikkrettigheter • logo/brandguide • dato",
		},
		Equipment: models.Equipment{
			Available: models.EquipmentAvailability{
				IPhone17ProMax: true,
				DJIMics:        true,
				DJIGimbal:      true,
				MobileLight:    true,
			},
			ExtraToBring: "Powerbank, ekstra ladekabler, teip, hvit papp/reflektor, minnekort (hvis relevant).",
			PreflightChecks: "100% batteri • Rydd lagring • Test lyd (DJI mic) • Test lys • Sjekk gimbal • " +
				"Sjekk fokus/eksponering • Flymodus (om mulig) • Backup-opptak",
		},
		Documentation: models.Documentation{
			LogPlan: "Hver uke: hva ble gjort, hva gjenstår, beslutninger, filer/lenker, læring, risiko/tiltak.",
			FileStructure: "/footage/YYYY-MM-DD/ • /audio/ • /project/ • /exports/9x16/ og /exports/16x9/ • " +
				"/ai/freepik/images/ og /ai/freepik/video/",
			NamingConventions: "Kunde_Prosjekt_Dato_V1 (f.eks. Bjornholt_Intervju_2026-02-02_V1). " +
				"Bruk samme navn i Freepik-promptlogg.",
			BackupPlan: "Lagre råfiler samme dag (lokalt + sky). Ha minst 2 kopier før sletting fra telefon.",
		},
		Productions: models.Productions{
			Videos:   []models.VideoPlan{f.starterVideo()},
			Graphics: []models.GraphicPlan{f.starterGraphic()},
		},
		Weeks: []models.WeekEntry{f.starterWeek(deadline)},
	}
}

func (f *Factory) starterVideo() models.VideoPlan {
	return models.VideoPlan{
		ID:           f.NewID(),
		Title:        defaultVideoTitle,
		Deliverables: "9:16 v1, 16:9 v1 (om relevant), thumbnail, tekst",
		Formats:      "9:16 + 16:9",
		Structure:    defaultStructure,
		ShootDays:    []models.ShootDay{},
		InterviewGuide: "Rekkefølge: 1) Hook (1 setning) 2) Presentasjon 3) 3–5 korte svar " +
			"4) Cutaways/småprat 5) Avslutning/CTA",
		Questions: "• Hva ønsker dere at publikum skal føle?\n" +
			"• Hva er den viktigste grunnen til å møte opp/kjøpe/engasjere seg?\n" +
			"• Hvis du må beskrive dette med ett ord – hvilket?\n" +
			"• Hva er det mest overraskende ved prosjektet?",
		CameraSetup: "Vinkel 1: Close-up (fra siden) • Vinkel 2: Medium close-up (forfra) • " +
			"Rolige bevegelser • Naturlig lys + ett punktlys",
		BrollList: "Intervju-nær: hender, notater, kaffekopp, justering før take.\n" +
			"Undervisning/event: aktiviteter, mennesker i arbeid, detaljer.\n" +
			"Miljø: skilt, rom, inngang, stemning, teksturer.",
		FreepikImagePlan: "Moodboard, thumbnails, overlays, generative fills, stiltester (noter prompts + resultat).",
		FreepikVideoPlan: "AI-b-roll, alternative takes, transitions, safety shots (noter prompts + eksport).",
		Publishing:       DefaultPublishing(),
		Status:           models.StatusPlanned,
	}
}

func (f *Factory) starterGraphic() models.GraphicPlan {
	return models.GraphicPlan{
		ID:               f.NewID(),
		Title:            defaultGfxTitle,
		Deliverables:     "1–3 varianter + eksport (PNG/JPG/MP4 hvis motion)",
		Formats:          "1080x1920 (Story/Reels), 1080x1350 (feed) – juster ved behov",
		StyleGuide:       "Bruk kundens brandguide. Noter typografi, farger, tone, grid.",
		AssetsNeeded:     "Logo, fonter, bilder, tekst, eventuelle lenker/CTA.",
		ShootDays:        []models.ShootDay{},
		FreepikImagePlan: "Generer varianter, bakgrunner, teksturer, elementer. Loggfør prompts + valg.",
		FreepikVideoPlan: "Hvis motion/AI-video: korte loops, bakgrunner, overganger (loggfør prompts).",
		Publishing:       DefaultPublishing(),
		Status:           models.StatusPlanned,
	}
}

// starterWeek is the first week of the plan: the Monday on or after today,
// provided it does not pass the deadline. Otherwise today is used with a
// generic label.
func (f *Factory) starterWeek(deadline string) models.WeekEntry {
	now := f.Now()
	week := f.emptyWeek(FormatDate(now), starterWeekLabel)

	monday := NextMonday(now)
	if due, ok := ParseDate(deadline, now.Location()); ok && !monday.After(due) {
		week.WeekStart = FormatDate(monday)
		week.WeekLabel = WeekLabel(monday)
	}
	return week
}

func (f *Factory) emptyWeek(weekStart, label string) models.WeekEntry {
	return models.WeekEntry{
		ID:                  f.NewID(),
		WeekStart:           weekStart,
		WeekLabel:           label,
		ShootDays:           []models.ShootDay{},
		LinkedProductionIDs: []string{},
	}
}

// NewVideo builds the item added by "add video"
func (f *Factory) NewVideo() models.VideoPlan {
	return models.VideoPlan{
		ID:         f.NewID(),
		Title:      "Ny video (skriv tittel)",
		Formats:    "9:16 + 16:9",
		Structure:  defaultStructure,
		ShootDays:  []models.ShootDay{},
		Publishing: DefaultPublishing(),
		Status:     models.StatusPlanned,
	}
}

// NewGraphic builds the item added by "add graphic"
func (f *Factory) NewGraphic() models.GraphicPlan {
	return models.GraphicPlan{
		ID:         f.NewID(),
		Title:      "Ny grafikk (skriv tittel)",
		Formats:    "1080x1920",
		ShootDays:  []models.ShootDay{},
		Publishing: DefaultPublishing(),
		Status:     models.StatusPlanned,
	}
}

// NewWeek builds the item added by "add week", starting next Monday
func (f *Factory) NewWeek() models.WeekEntry {
	return f.emptyWeek(FormatDate(NextMonday(f.Now())), newWeekLabel)
}

// NewShootDay returns an empty shoot day
func NewShootDay() models.ShootDay {
	return models.ShootDay{}
}
