package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"registration-backend/internal/domain"
	"registration-backend/internal/service"
)

// AdminHandler serves the token-protected review endpoints.
type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	token, err := h.adminSvc.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "login successful", map[string]string{"token": token})
}

func (h *AdminHandler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListFilter{
		Status:      q.Get("status"),
		Institution: q.Get("institution"),
		Search:      q.Get("search"),
	}

	page := parseIntParam(q.Get("page"), 1)
	pageSize := parseIntParam(q.Get("limit"), 50)

	regs, total, err := h.adminSvc.ListRegistrations(r.Context(), filter, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if regs == nil {
		regs = []domain.Registration{}
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{
		"registrations": regs,
		"total":         total,
		"page":          page,
		"totalPages":    totalPages,
	})
}

func (h *AdminHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := registrationID(w, r)
	if !ok {
		return
	}

	approver := "admin"
	if claims := adminClaimsFrom(r.Context()); claims != nil {
		approver = claims.Username
	}

	reg, emailSent, err := h.adminSvc.ApproveRegistration(r.Context(), id, approver)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "registration approved and confirmation email sent"
	if !emailSent {
		message = "registration approved but the confirmation email could not be sent"
	}
	respondSuccess(w, http.StatusOK, message, map[string]any{
		"registration": reg,
		"emailSent":    emailSent,
	})
}

func (h *AdminHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := registrationID(w, r)
	if !ok {
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	approver := "admin"
	if claims := adminClaimsFrom(r.Context()); claims != nil {
		approver = claims.Username
	}

	reg, emailSent, err := h.adminSvc.RejectRegistration(r.Context(), id, approver, in.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "registration rejected and notification email sent"
	if !emailSent {
		message = "registration rejected but the notification email could not be sent"
	}
	respondSuccess(w, http.StatusOK, message, map[string]any{
		"registration": reg,
		"emailSent":    emailSent,
	})
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", stats)
}

func registrationID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid registration id"})
		return 0, false
	}
	return int32(id), true
}

func parseIntParam(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
