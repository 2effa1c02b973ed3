package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"trimplan/internal/domain"
	"trimplan/internal/domain/models"
	"trimplan/internal/domain/services"
	"trimplan/internal/httputil"
)

// PlanHandler handles planning document HTTP requests
type PlanHandler struct {
	service services.PlanService
	logger  *slog.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service services.PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck reports that the server is up
// GET /health
func (h *PlanHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetPlan returns the current document
// GET /api/plan
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.service.Current())
}

// ReplacePlan replaces the document with the request body.
// Any JSON value is accepted; it is normalized like an import.
// PUT /api/plan
func (h *PlanHandler) ReplacePlan(w http.ResponseWriter, r *http.Request) {
	var raw interface{}
	if err := httputil.ParseJSON(w, r, &raw); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.Replace(r.Context(), raw)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// PatchPlan applies an RFC 7396 merge patch to the document
// PATCH /api/plan
func (h *PlanHandler) PatchPlan(w http.ResponseWriter, r *http.Request) {
	patch, ok := parseMergePatch(w, r)
	if !ok {
		return
	}

	doc, err := h.service.MergePatch(r.Context(), patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ResetPlan replaces the document with defaults.
// POST /api/plan/reset?confirm=true
func (h *PlanHandler) ResetPlan(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Reset(r.Context(), httputil.QueryBool(r, "confirm"))
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("plan reset via API", "actor", httputil.Actor(r))
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// AddVideo appends a new video
// POST /api/plan/videos
func (h *PlanHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.service.AddVideo(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, video)
}

// AddGraphic appends a new graphic
// POST /api/plan/graphics
func (h *PlanHandler) AddGraphic(w http.ResponseWriter, r *http.Request) {
	graphic, err := h.service.AddGraphic(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, graphic)
}

// AddWeek appends a new week
// POST /api/plan/weeks
func (h *PlanHandler) AddWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.service.AddWeek(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, week)
}

// UpdateItem merge-patches one video, graphic or week
// PATCH /api/plan/{kind}/{id}
func (h *PlanHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	patch, ok := parseMergePatch(w, r)
	if !ok {
		return
	}

	doc, err := h.service.UpdateItem(r.Context(), kind, r.PathValue("id"), patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteProduction removes a video or graphic and unlinks it from all weeks
// DELETE /api/plan/productions/{id}?confirm=true
func (h *PlanHandler) DeleteProduction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := h.service.DeleteProduction(r.Context(), id, httputil.QueryBool(r, "confirm"))
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("production deleted", "id", id, "actor", httputil.Actor(r))
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteWeek removes a week
// DELETE /api/plan/weeks/{id}?confirm=true
func (h *PlanHandler) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := h.service.DeleteWeek(r.Context(), id, httputil.QueryBool(r, "confirm"))
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("week deleted", "id", id, "actor", httputil.Actor(r))
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// LinkProduction links a production to a week
// PUT /api/plan/weeks/{id}/links/{productionId}
func (h *PlanHandler) LinkProduction(w http.ResponseWriter, r *http.Request) {
	h.setLink(w, r, true)
}

// UnlinkProduction removes a production from a week's links
// DELETE /api/plan/weeks/{id}/links/{productionId}
func (h *PlanHandler) UnlinkProduction(w http.ResponseWriter, r *http.Request) {
	h.setLink(w, r, false)
}

func (h *PlanHandler) setLink(w http.ResponseWriter, r *http.Request, linked bool) {
	doc, err := h.service.SetWeekLink(r.Context(), r.PathValue("id"), r.PathValue("productionId"), linked)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// AddShootDay appends an empty shoot day
// POST /api/plan/{kind}/{id}/shoot-days
func (h *PlanHandler) AddShootDay(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	doc, err := h.service.AddShootDay(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// UpdateShootDay merge-patches one shoot day
// PATCH /api/plan/{kind}/{id}/shoot-days/{index}
func (h *PlanHandler) UpdateShootDay(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	patch, ok := parseMergePatch(w, r)
	if !ok {
		return
	}

	doc, err := h.service.UpdateShootDay(r.Context(), kind, r.PathValue("id"), index, patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RemoveShootDay removes one shoot day. No confirmation is needed.
// DELETE /api/plan/{kind}/{id}/shoot-days/{index}
func (h *PlanHandler) RemoveShootDay(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}

	doc, err := h.service.RemoveShootDay(r.Context(), kind, r.PathValue("id"), index)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

func parseKind(w http.ResponseWriter, r *http.Request) (models.ProductionKind, bool) {
	kind, ok := models.ParseProductionKind(r.PathValue("kind"))
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "unknown item kind: "+r.PathValue("kind"))
		return "", false
	}
	return kind, true
}

func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handleError(w, &domain.ValidationError{Message: "shoot day index must be an integer"})
		return 0, false
	}
	return index, true
}

// parseMergePatch decodes a JSON object body; anything else is rejected
func parseMergePatch(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var patch map[string]interface{}
	if err := httputil.ParseJSON(w, r, &patch); err != nil || patch == nil {
		httputil.RespondError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	return patch, true
}
