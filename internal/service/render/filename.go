package render

import (
	"regexp"

	"trimplan/internal/config"
	"trimplan/internal/domain/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// FileName builds TRiM_Produksjonsplan_<kunde>_<prosjekt>.<ext> with
// whitespace runs replaced by underscores, cut to config.MaxFileNameLength
// characters including the extension
func FileName(doc *models.Document, ext string) string {
	customer := doc.Customer.Name
	if customer == "" {
		customer = "kunde"
	}
	project := doc.Customer.ProjectName
	if project == "" {
		project = "prosjekt"
	}

	name := "TRiM_Produksjonsplan_" +
		whitespace.ReplaceAllString(customer, "_") + "_" +
		whitespace.ReplaceAllString(project, "_") + "." + ext

	if runes := []rune(name); len(runes) > config.MaxFileNameLength {
		name = string(runes[:config.MaxFileNameLength])
	}
	return name
}
