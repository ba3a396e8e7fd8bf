package handlers

import (
	"net/http"
	"strconv"

	"github.com/courseplatform/recommendation-service/internal/application/recommendation"
	"github.com/courseplatform/recommendation-service/internal/transport/http/dto"
	"github.com/courseplatform/recommendation-service/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type RecommendationsHandler struct {
	svc *recommendation.Service
}

func NewRecommendationsHandler(svc *recommendation.Service) *RecommendationsHandler {
	return &RecommendationsHandler{svc: svc}
}

func userIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Get returns the stored recommendations for a user. Unknown users get an
// empty list, not a 404.
func (h *RecommendationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		response.Fail(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	set, err := h.svc.GetRecommendations(r.Context(), userID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.FromRecommendationSet(set))
}

// Recalculate runs a recalculation before responding, so a follow-up read
// sees the fresh row-set. The confirmation is unconditional; failures
// surface in logs and metrics only.
func (h *RecommendationsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		response.Fail(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	h.svc.RecalculateAndReport(r.Context(), userID)
	response.JSON(w, http.StatusOK, dto.MessageResp{Message: "Recommendations recalculation triggered"})
}

func (h *RecommendationsHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		response.Fail(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	prefs, err := h.svc.GetUserPreferences(r.Context(), userID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.FromPreferences(prefs))
}

// SyncCourses refreshes the catalog snapshot before responding. Like
// Recalculate, the confirmation is unconditional.
func (h *RecommendationsHandler) SyncCourses(w http.ResponseWriter, r *http.Request) {
	h.svc.SyncCoursesAndReport(r.Context())
	response.JSON(w, http.StatusOK, dto.MessageResp{Message: "Course sync triggered"})
}
