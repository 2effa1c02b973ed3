package handler

import "net/http"

// RegisterRoutes wires every plan endpoint onto mux (Go 1.22+ patterns)
func (h *PlanHandler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", h.HealthCheck)

	// Whole document
	mux.HandleFunc("GET /api/plan", h.GetPlan)
	mux.HandleFunc("PUT /api/plan", h.ReplacePlan)
	mux.HandleFunc("PATCH /api/plan", h.PatchPlan)
	mux.HandleFunc("POST /api/plan/reset", h.ResetPlan)

	// Export / import
	mux.HandleFunc("GET /api/plan/export", h.ExportJSON)
	mux.HandleFunc("GET /api/plan/export.md", h.ExportMarkdown)
	mux.HandleFunc("POST /api/plan/import", h.ImportJSON)
	mux.HandleFunc("GET /plan/print", h.PrintView)

	// Items
	mux.HandleFunc("POST /api/plan/videos", h.AddVideo)
	mux.HandleFunc("POST /api/plan/graphics", h.AddGraphic)
	mux.HandleFunc("POST /api/plan/weeks", h.AddWeek)
	mux.HandleFunc("PATCH /api/plan/{kind}/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/plan/productions/{id}", h.DeleteProduction)
	mux.HandleFunc("DELETE /api/plan/weeks/{id}", h.DeleteWeek)

	// Week links
	mux.HandleFunc("PUT /api/plan/weeks/{id}/links/{productionId}", h.LinkProduction)
	mux.HandleFunc("DELETE /api/plan/weeks/{id}/links/{productionId}", h.UnlinkProduction)

	// Shoot days
	mux.HandleFunc("POST /api/plan/{kind}/{id}/shoot-days", h.AddShootDay)
	mux.HandleFunc("PATCH /api/plan/{kind}/{id}/shoot-days/{index}", h.UpdateShootDay)
	mux.HandleFunc("DELETE /api/plan/{kind}/{id}/shoot-days/{index}", h.RemoveShootDay)
}
