package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/service"
)

// Pinger is the subset of *sql.DB the health endpoint needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegistrationHandler serves the public participant endpoints.
type RegistrationHandler struct {
	regSvc service.RegistrationService
	event  config.EventConfig
	db     Pinger
}

func NewRegistrationHandler(regSvc service.RegistrationService, event config.EventConfig, db Pinger) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc, event: event, db: db}
}

// HandleRoot answers with the event's public parameters so a client can
// render the form without hardcoding the pricing table.
func (h *RegistrationHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.event.Name+" registration API is running", map[string]any{
		"event": h.event.Name,
		"pricing": map[string]any{
			"polytechnic": map[string]any{
				"memberFee":    h.event.Polytechnic.MemberFee,
				"nonMemberFee": h.event.Polytechnic.NonMemberFee,
				"open":         h.event.Polytechnic.Open,
			},
			"engineering": map[string]any{
				"memberFee":    h.event.Engineering.MemberFee,
				"nonMemberFee": h.event.Engineering.NonMemberFee,
				"open":         h.event.Engineering.Open,
			},
		},
		"stayPricePerDay":  h.event.StayPricePerDay,
		"stayCapacity":     h.event.StayCapacity,
		"allowedStayDates": h.event.AllowedStayDates,
	})
}

func (h *RegistrationHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "up"
	if h.db == nil {
		dbStatus = "not configured"
	} else if err := h.db.PingContext(r.Context()); err != nil {
		dbStatus = "down"
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	reg, err := h.regSvc.Submit(r.Context(), &in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated,
		"Registration submitted successfully! You will receive a confirmation email once your payment is verified.",
		reg)
}

func (h *RegistrationHandler) HandleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	exists, err := h.regSvc.EmailRegistered(r.Context(), in.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]bool{"exists": exists})
}

func (h *RegistrationHandler) HandleCheckStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]
	summary, err := h.regSvc.CheckStatus(r.Context(), transactionID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", summary)
}

func (h *RegistrationHandler) HandleStayAvailability(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.regSvc.StayAvailability(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", snapshot)
}

func (h *RegistrationHandler) HandleGetRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid registration id"})
		return
	}

	reg, err := h.regSvc.GetRegistration(r.Context(), int32(id))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", reg)
}
