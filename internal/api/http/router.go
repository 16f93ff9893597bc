package http

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"registration-backend/internal/config"
	"registration-backend/internal/security"
	"registration-backend/internal/service"
)

// NewRouter wires the full HTTP surface: public registration endpoints plus
// the token-protected admin endpoints, wrapped with request logging and CORS.
func NewRouter(cfg *config.Config, db Pinger, regSvc service.RegistrationService, adminSvc service.AdminService, tokenMgr security.TokenManager) http.Handler {
	router := mux.NewRouter()

	regHandler := NewRegistrationHandler(regSvc, cfg.Event, db)
	adminHandler := NewAdminHandler(adminSvc)

	router.HandleFunc("/", regHandler.HandleRoot).Methods("GET")
	router.HandleFunc("/api/health", regHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/api/register", regHandler.HandleRegister).Methods("POST")
	router.HandleFunc("/api/check-email", regHandler.HandleCheckEmail).Methods("POST")
	router.HandleFunc("/api/check-status/{transactionId}", regHandler.HandleCheckStatus).Methods("GET")
	router.HandleFunc("/api/stay-availability", regHandler.HandleStayAvailability).Methods("GET")
	router.HandleFunc("/api/registration/{id:[0-9]+}", regHandler.HandleGetRegistration).Methods("GET")

	router.HandleFunc("/api/admin/login", adminHandler.HandleLogin).Methods("POST")
	router.HandleFunc("/api/admin/registrations",
		requireAdmin(tokenMgr, adminHandler.HandleListRegistrations)).Methods("GET")
	router.HandleFunc("/api/admin/registration/{id:[0-9]+}/approve",
		requireAdmin(tokenMgr, adminHandler.HandleApprove)).Methods("PUT")
	router.HandleFunc("/api/admin/registration/{id:[0-9]+}/reject",
		requireAdmin(tokenMgr, adminHandler.HandleReject)).Methods("PUT")
	router.HandleFunc("/api/admin/stats",
		requireAdmin(tokenMgr, adminHandler.HandleStats)).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return requestLogging(cors(router))
}
