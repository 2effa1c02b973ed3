// Package render turns a planning document into printable output.
//
// All formats share one view model built by buildPage: every field of the
// document appears, and empty values show Placeholder so a printed plan
// makes gaps visible instead of hiding them.
package render

import (
	"regexp"
	"strings"
	"time"

	"trimplan/internal/domain/models"
)

// Placeholder stands in for empty or whitespace-only values
const Placeholder = "Ikke oppgitt"

var (
	lineSplit     = regexp.MustCompile(`\r?\n`)
	leadingBullet = regexp.MustCompile(`^•\s?`)
)

// Page is the format-independent printable form of a document
type Page struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Section is a headed block of fields, optionally followed by cards
// (one per production or week)
type Section struct {
	Heading string
	Intro   string
	Fields  []Field
	Cards   []Card
}

// Card is one production or week inside a section
type Card struct {
	Heading string
	Fields  []Field
}

// Field is a labelled value. List fields render Lines as bullets.
type Field struct {
	Label string
	Text  string
	Lines []string
	List  bool
}

func value(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return Placeholder
}

// bulletLines splits multi-line text into trimmed, non-empty lines and
// strips a leading bullet the user typed themselves
func bulletLines(s string) []string {
	var lines []string
	for _, line := range lineSplit.Split(s, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, leadingBullet.ReplaceAllString(line, ""))
	}
	return lines
}

func text(label, s string) Field {
	return Field{Label: label, Text: value(s)}
}

func list(label, s string) Field {
	return Field{Label: label, Lines: bulletLines(s), List: true}
}

func check(on bool) string {
	if on {
		return "✓"
	}
	return "–"
}

func shootDays(days []models.ShootDay) Field {
	f := Field{Label: "Shoot-dager", List: true}
	for _, d := range days {
		f.Lines = append(f.Lines, strings.Join([]string{
			value(d.Date), value(d.CallTime), value(d.Location), value(d.Notes),
		}, " • "))
	}
	return f
}

func publishing(p models.PublishingPlan) []Field {
	return []Field{
		list("Publisering – helhetlig plan", p.OverallPlan),
		text("Plattformer", p.Platforms),
		text("Frekvens", p.Cadence),
		list("Godkjenninger", p.Approvals),
		list("Roller", p.Roles),
		list("Måling", p.Metrics),
		list("Publisering – notater", p.Notes),
	}
}

// formatStamp shows stored timestamps as local Norwegian date-time;
// anything unparseable is shown as stored
func formatStamp(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return value(s)
	}
	return t.Local().Format("02.01.2006, 15:04:05")
}

func buildPage(doc *models.Document) Page {
	page := Page{
		Title: value(doc.Meta.Title),
		Subtitle: "Kandidat/gruppe: " + value(doc.Meta.OwnerName) +
			" • Opprettet: " + formatStamp(doc.Meta.CreatedAt) +
			" • Oppdatert: " + formatStamp(doc.Meta.UpdatedAt),
	}

	page.Sections = append(page.Sections,
		Section{
			Heading: "Kunde og prosjekt",
			Fields: []Field{
				text("Kunde", doc.Customer.Name),
				text("Kontakt", doc.Customer.Contact),
				text("Prosjektnavn", doc.Customer.ProjectName),
				text("Deadline", doc.Customer.Deadline),
				list("Kundens ønsker (brief)", doc.Customer.Brief),
				list("Suksesskriterier", doc.Customer.SuccessCriteria),
				text("Målgruppe", doc.Customer.TargetAudience),
				text("Kanaler / flater", doc.Customer.Channels),
			},
		},
		Section{
			Heading: "Konsept og strategi",
			Fields: []Field{
				list("Konsept", doc.Strategy.Concept),
				list("Kjernebudskap", doc.Strategy.KeyMessage),
				list("Tone og visuell stil", doc.Strategy.ToneAndStyle),
				list("Hook-idéer", doc.Strategy.HookIdeas),
				list("Struktur", doc.Strategy.Structure),
				list("Referanser", doc.Strategy.References),
			},
		},
		Section{
			Heading: "Logistikk og avtaler",
			Fields: []Field{
				text("Hovedlocation", doc.Logistics.MainLocation),
				text("Rom / klasserom", doc.Logistics.ClassroomOrRoom),
				list("Hvem må avklare filming med", doc.Logistics.ContactsToClear),
				list("Medvirkende (lærer/talent)", doc.Logistics.TeachersOrTalent),
				list("Assistenter / statister", doc.Logistics.Assistants),
				list("Tillatelser", doc.Logistics.Permissions),
			},
		},
		Section{
			Heading: "Utstyr og tekniske sjekker",
			Fields: []Field{
				{Label: "Tilgjengelig", Text: equipmentLine(doc.Equipment.Available)},
				list("Ekstra å ta med", doc.Equipment.ExtraToBring),
				list("Preflight (før opptak)", doc.Equipment.PreflightChecks),
			},
		},
		Section{
			Heading: "Dokumentasjon",
			Fields: []Field{
				list("Loggplan", doc.Documentation.LogPlan),
				list("Filstruktur", doc.Documentation.FileStructure),
				list("Navngiving", doc.Documentation.NamingConventions),
				list("Backup", doc.Documentation.BackupPlan),
			},
		},
		videoSection(doc.Productions.Videos),
		graphicSection(doc.Productions.Graphics),
		weekSection(doc),
	)
	return page
}

func equipmentLine(a models.EquipmentAvailability) string {
	return strings.Join([]string{
		check(a.IPhone17ProMax) + " iPhone 17 Pro Max",
		check(a.DJIMics) + " DJI mikrofoner",
		check(a.DJIGimbal) + " DJI gimbal",
		check(a.MobileLight) + " Mobilt lys",
	}, " • ")
}

func videoSection(videos []models.VideoPlan) Section {
	s := Section{Heading: "Videoproduksjoner"}
	for _, v := range videos {
		fields := []Field{
			text("Status", string(v.Status)),
			list("Mål", v.Goal),
			list("Leveranser", v.Deliverables),
			text("Formater", v.Formats),
			list("Konsept", v.Concept),
			list("Hook-idéer", v.HookIdeas),
			list("Struktur", v.Structure),
			list("Tone og stil", v.ToneAndStyle),
			list("Locations", v.Locations),
			shootDays(v.ShootDays),
			list("Intervjuguide", v.InterviewGuide),
			list("Spørsmål", v.Questions),
			list("Kameraoppsett", v.CameraSetup),
			list("B-roll-liste", v.BrollList),
			list("Freepik – bilde", v.FreepikImagePlan),
			list("Freepik – video", v.FreepikVideoPlan),
			list("Notater", v.Notes),
		}
		s.Cards = append(s.Cards, Card{
			Heading: "🎬 " + value(v.Title),
			Fields:  append(fields, publishing(v.Publishing)...),
		})
	}
	return s
}

func graphicSection(graphics []models.GraphicPlan) Section {
	s := Section{Heading: "Grafikkproduksjoner"}
	for _, g := range graphics {
		fields := []Field{
			text("Status", string(g.Status)),
			list("Mål", g.Goal),
			list("Leveranser", g.Deliverables),
			text("Formater", g.Formats),
			list("Stilguide", g.StyleGuide),
			list("Assets som trengs", g.AssetsNeeded),
			shootDays(g.ShootDays),
			list("Freepik – bilde", g.FreepikImagePlan),
			list("Freepik – video", g.FreepikVideoPlan),
			list("Notater", g.Notes),
		}
		s.Cards = append(s.Cards, Card{
			Heading: "🖼️ " + value(g.Title),
			Fields:  append(fields, publishing(g.Publishing)...),
		})
	}
	return s
}

func weekSection(doc *models.Document) Section {
	s := Section{
		Heading: "Ukeplan frem til " + value(doc.Customer.Deadline),
		Intro:   "Aktiviteter, avklaringer, Freepik-prompts/iterasjoner, shoot-dager, leveranser og risiko.",
	}
	for _, w := range doc.Weeks {
		s.Cards = append(s.Cards, Card{
			Heading: value(w.WeekLabel),
			Fields: []Field{
				text("Uke starter", w.WeekStart),
				linkedProductions(doc, w.LinkedProductionIDs),
				list("Fokus", w.Focus),
				list("Leveranser", w.Deliverables),
				list("Kunde/avklaringer", w.CustomerAndApprovals),
				list("Produksjon/redigering", w.ProductionWork),
				list("Freepik – bilde", w.FreepikImageWork),
				list("Freepik – video", w.FreepikVideoWork),
				shootDays(w.ShootDays),
				list("Risiko/tiltak", w.Risks),
			},
		})
	}
	return s
}

// linkedProductions lists titles of linked productions; ids that no longer
// resolve are skipped
func linkedProductions(doc *models.Document, ids []string) Field {
	f := Field{Label: "Koblede produksjoner", List: true}
	for _, id := range ids {
		if title, ok := doc.ProductionTitle(id); ok {
			f.Lines = append(f.Lines, value(title))
		}
	}
	return f
}
