// internal/controller/trial_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/cosmos-order/trial-engine/internal/errors"
	"github.com/cosmos-order/trial-engine/internal/model"
	"github.com/cosmos-order/trial-engine/internal/repository"
	"github.com/cosmos-order/trial-engine/internal/service"
)

type TrialController struct {
	TrialService *service.TrialService
	DispatchLog  repository.DispatchLog
}

func (c *TrialController) StartTrial(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InvitationID string `json:"invitation_id"`
		service.TrialDetails
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.InvitationID == "" {
		http.Error(w, "invitation_id is required", http.StatusBadRequest)
		return
	}

	trial, err := c.TrialService.StartTrial(body.InvitationID, body.TrialDetails)
	if err != nil {
		var exists *appErrors.ErrTrialExists
		if errors.As(err, &exists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trial)
}

func (c *TrialController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "id")

	var body struct {
		Activity string `json:"activity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	// Unknown invitation ids are a silent no-op by contract.
	c.TrialService.UpdateActivity(invitationID, body.Activity)
	w.WriteHeader(http.StatusNoContent)
}

func (c *TrialController) ConvertTrial(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "id")

	var body struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	converted := c.TrialService.ConvertTrial(invitationID, body.Value)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"invitation_id": invitationID,
		"converted":     converted,
	})
}

func (c *TrialController) GetCountdown(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "id")

	cd := c.TrialService.GetTrialCountdown(invitationID)
	if cd == nil {
		http.Error(w, appErrors.NewTrialNotFound(invitationID).Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cd)
}

func (c *TrialController) GetConversionMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := c.TrialService.GetConversionMetrics()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

func (c *TrialController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data": c.TrialService.Catalog,
	})
}

// GetCampaignStats returns dispatch-log counts for one catalog entry.
func (c *TrialController) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	var found *model.CampaignTemplate
	for i := range c.TrialService.Catalog {
		if c.TrialService.Catalog[i].ID == campaignID {
			found = &c.TrialService.Catalog[i]
			break
		}
	}
	if found == nil {
		http.Error(w, "unknown campaign", http.StatusNotFound)
		return
	}

	stats, err := c.DispatchLog.CountByStatus(campaignID)
	if err != nil {
		http.Error(w, "failed to fetch campaign stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"campaign": found,
		"stats":    stats,
	})
}
