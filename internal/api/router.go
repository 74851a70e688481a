package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/handler"
	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/factory"
)

// NewRouter creates a new API router with all routes configured
func NewRouter(app *factory.App, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(app.AuthService)
	userHandler := handler.NewUserHandler(app.Directory)
	inviteHandler := handler.NewInviteHandler(app.InviteController)
	campaignHandler := handler.NewCampaignHandler(app.CampaignController)
	bookingHandler := handler.NewBookingHandler(app.BookingController)
	scoreHandler := handler.NewScoreHandler(app.ScoreController)
	allianceHandler := handler.NewAllianceHandler(app.AllianceController)
	auditHandler := handler.NewAuditHandler(app.Recorder)

	// Create middleware
	authMiddleware := middleware.Auth(app.AuthService)
	adminMiddleware := middleware.RequireAdmin()

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(logger))
	api.Use(middleware.Logging(logger))

	// Auth routes (no session required for signup/login)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authed := api.PathPrefix("/auth").Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Self-service profile routes
	me := api.PathPrefix("/users/me").Subrouter()
	me.Use(authMiddleware)
	me.HandleFunc("/profile", userHandler.CompleteProfile).Methods(http.MethodPut)
	me.HandleFunc("/submit", userHandler.Promote).Methods(http.MethodPost)

	// Campaign read routes (any authenticated member)
	campaigns := api.PathPrefix("/campaigns").Subrouter()
	campaigns.Use(authMiddleware)
	campaigns.HandleFunc("/active", campaignHandler.Active).Methods(http.MethodGet)
	campaigns.HandleFunc("/history", campaignHandler.History).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}", campaignHandler.Get).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}/prep-days", campaignHandler.PrepDays).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}/slots", campaignHandler.Slots).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}/days/{day}/slots", campaignHandler.SlotsForDay).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}/score", scoreHandler.Totals).Methods(http.MethodGet)

	// Booking routes (approved members; approval enforced in the service)
	campaigns.HandleFunc("/{id}/slots/{slot_id}/book", bookingHandler.Book).Methods(http.MethodPost)
	campaigns.HandleFunc("/{id}/slots/{slot_id}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	campaigns.HandleFunc("/{id}/slots/{slot_id}/rebook", bookingHandler.Rebook).Methods(http.MethodPost)

	// Alliance registry (read for members)
	alliances := api.PathPrefix("/alliances").Subrouter()
	alliances.Use(authMiddleware)
	alliances.HandleFunc("", allianceHandler.List).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(adminMiddleware)

	admin.HandleFunc("/invites", inviteHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/invites", inviteHandler.ListActive).Methods(http.MethodGet)
	admin.HandleFunc("/invites/{email}", inviteHandler.Cancel).Methods(http.MethodDelete)

	admin.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/placeholders", userHandler.Placeholders).Methods(http.MethodGet)
	admin.HandleFunc("/users/{email}", userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{email}", userHandler.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{email}", userHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{email}/approve", userHandler.Approve).Methods(http.MethodPost)

	admin.HandleFunc("/campaigns", campaignHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns/{id}/victor", campaignHandler.SetVictor).Methods(http.MethodPut)
	admin.HandleFunc("/campaigns/{id}/complete", campaignHandler.Complete).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns/{id}/days/{day}/score", scoreHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/campaigns/{id}/slots/{slot_id}/reserve", bookingHandler.AdminReserve).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns/{id}/slots/{slot_id}/cancel", bookingHandler.AdminCancel).Methods(http.MethodPost)

	admin.HandleFunc("/alliances", allianceHandler.Save).Methods(http.MethodPut)
	admin.HandleFunc("/audit", auditHandler.List).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
