package render

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"trimplan/internal/config"
	"trimplan/internal/domain/models"
)

func testDocument() *models.Document {
	return &models.Document{
		Meta: models.Meta{
			Title:     "TRiM Produksjonsplan",
			CreatedAt: "2026-01-15T08:00:00.000Z",
			UpdatedAt: "2026-02-04T10:30:00.000Z",
		},
		Customer: models.Customer{
			Name:        "Bjørnholt VGS",
			ProjectName: "Intervju",
			Deadline:    "2026-06-01",
			Brief:       "• Vise skolen\n\n  •Rekruttere elever\r\nKorte klipp",
		},
		Equipment: models.Equipment{
			Available: models.EquipmentAvailability{IPhone17ProMax: true, DJIGimbal: true},
		},
		Productions: models.Productions{
			Videos: []models.VideoPlan{{
				ID:        "v1",
				Title:     "Intro <script>alert(1)</script>",
				Status:    models.StatusPlanned,
				ShootDays: []models.ShootDay{{Date: "2026-02-10", Location: "Aula"}},
			}},
			Graphics: []models.GraphicPlan{{ID: "g1", Title: "Plakat", Status: models.StatusIdea}},
		},
		Weeks: []models.WeekEntry{{
			ID:                  "w1",
			WeekStart:           "2026-02-09",
			WeekLabel:           "Uke 7",
			LinkedProductionIDs: []string{"g1", "gone", "v1"},
		}},
	}
}

func findField(t *testing.T, fields []Field, label string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Label == label {
			return f
		}
	}
	t.Fatalf("field %q not found", label)
	return Field{}
}

func TestBuildPage(t *testing.T) {
	page := buildPage(testDocument())

	for _, want := range []string{"Kandidat/gruppe: " + Placeholder, "Opprettet: 15.01.2026, ", "Oppdatert: "} {
		if !strings.Contains(page.Subtitle, want) {
			t.Errorf("subtitle = %q, want it to contain %q", page.Subtitle, want)
		}
	}

	headings := make([]string, len(page.Sections))
	for i, s := range page.Sections {
		headings[i] = s.Heading
	}
	wantHeadings := []string{
		"Kunde og prosjekt",
		"Konsept og strategi",
		"Logistikk og avtaler",
		"Utstyr og tekniske sjekker",
		"Dokumentasjon",
		"Videoproduksjoner",
		"Grafikkproduksjoner",
		"Ukeplan frem til 2026-06-01",
	}
	if !reflect.DeepEqual(headings, wantHeadings) {
		t.Fatalf("headings = %v", headings)
	}

	customer := page.Sections[0].Fields
	if got := findField(t, customer, "Kontakt").Text; got != Placeholder {
		t.Errorf("empty contact = %q, want placeholder", got)
	}
	if got := findField(t, customer, "Kunde").Text; got != "Bjørnholt VGS" {
		t.Errorf("customer = %q", got)
	}
	brief := findField(t, customer, "Kundens ønsker (brief)")
	if want := []string{"Vise skolen", "Rekruttere elever", "Korte klipp"}; !reflect.DeepEqual(brief.Lines, want) {
		t.Errorf("brief lines = %q, want %q", brief.Lines, want)
	}

	equipment := findField(t, page.Sections[3].Fields, "Tilgjengelig").Text
	if !strings.Contains(equipment, "✓ iPhone 17 Pro Max") || !strings.Contains(equipment, "– DJI mikrofoner") {
		t.Errorf("equipment = %q", equipment)
	}

	video := page.Sections[5].Cards[0]
	if !strings.HasPrefix(video.Heading, "🎬 Intro") {
		t.Errorf("video heading = %q", video.Heading)
	}
	days := findField(t, video.Fields, "Shoot-dager")
	if want := []string{"2026-02-10 • " + Placeholder + " • Aula • " + Placeholder}; !reflect.DeepEqual(days.Lines, want) {
		t.Errorf("shoot days = %q", days.Lines)
	}
	if got := findField(t, video.Fields, "Plattformer").Text; got != Placeholder {
		t.Errorf("platforms = %q", got)
	}

	if got := page.Sections[6].Cards[0].Heading; got != "🖼️ Plakat" {
		t.Errorf("graphic heading = %q", got)
	}

	linked := findField(t, page.Sections[7].Cards[0].Fields, "Koblede produksjoner")
	if want := []string{"Plakat", "Intro <script>alert(1)</script>"}; !reflect.DeepEqual(linked.Lines, want) {
		t.Errorf("linked = %q, want %q", linked.Lines, want)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", Placeholder},
		{"  \n\t", Placeholder},
		{" tekst ", "tekst"},
	}
	for _, tt := range tests {
		if got := value(tt.in); got != tt.want {
			t.Errorf("value(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatStamp(t *testing.T) {
	if got := formatStamp(""); got != Placeholder {
		t.Errorf("formatStamp(\"\") = %q", got)
	}
	if got := formatStamp("i går"); got != "i går" {
		t.Errorf("unparseable timestamp = %q, want it shown as stored", got)
	}
	if got := formatStamp("2026-02-04T10:30:00.000Z"); !strings.HasPrefix(got, "04.02.2026, ") && !strings.HasPrefix(got, "05.02.2026, ") {
		t.Errorf("formatStamp() = %q", got)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(testDocument())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>TRiM Produksjonsplan</title>",
		"<h2>Kunde og prosjekt</h2>",
		"<li>Rekruttere elever</li>",
		"<p>" + Placeholder + "</p>",
		"&lt;script&gt;",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("HTML output missing %q", want)
		}
	}
	if bytes.Contains(out, []byte("<script>")) {
		t.Errorf("user text was not escaped")
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown(testDocument())
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	parts := strings.SplitN(string(out), "---\n", 3)
	if len(parts) != 3 || parts[0] != "" {
		t.Fatalf("missing front matter:\n%s", out)
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("front matter is not YAML: %v", err)
	}
	want := frontMatter{
		Title:     "TRiM Produksjonsplan",
		Customer:  "Bjørnholt VGS",
		Project:   "Intervju",
		Deadline:  "2026-06-01",
		CreatedAt: "2026-01-15T08:00:00.000Z",
		UpdatedAt: "2026-02-04T10:30:00.000Z",
		Videos:    1,
		Graphics:  1,
		Weeks:     1,
	}
	if fm != want {
		t.Errorf("front matter = %+v, want %+v", fm, want)
	}

	body := parts[2]
	for _, want := range []string{"# TRiM Produksjonsplan", "## Videoproduksjoner", "Rekruttere elever", Placeholder} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown body missing %q", want)
		}
	}
}

func TestTerminal(t *testing.T) {
	out := Terminal(testDocument(), 80)

	for _, want := range []string{"TRiM Produksjonsplan", "Kunde og prosjekt", "Ukeplan frem til 2026-06-01", "Plakat"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("terminal output must end with a newline")
	}
}

func TestFileName(t *testing.T) {
	long := strings.Repeat("å", 200)

	tests := []struct {
		name     string
		customer string
		project  string
		ext      string
		want     string
	}{
		{"defaults", "", "", "json", "TRiM_Produksjonsplan_kunde_prosjekt.json"},
		{"whitespace runs", "Bjørnholt  VGS", "Intervju\tvår 2026", "md", "TRiM_Produksjonsplan_Bjørnholt_VGS_Intervju_vår_2026.md"},
		{"whitespace only name", "   ", "Film", "html", "TRiM_Produksjonsplan___Film.html"},
		{"truncated", long, "x", "md", string([]rune("TRiM_Produksjonsplan_" + long)[:config.MaxFileNameLength])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &models.Document{Customer: models.Customer{Name: tt.customer, ProjectName: tt.project}}
			got := FileName(doc, tt.ext)
			if got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n > config.MaxFileNameLength {
				t.Errorf("FileName() has %d characters", n)
			}
		})
	}
}
