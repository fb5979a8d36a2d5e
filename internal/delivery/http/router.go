package http

import (
	"net/http"

	"go-health-companion/internal/delivery/http/handler"
	"go-health-companion/internal/delivery/http/middleware"
	"go-health-companion/internal/observability/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	intakeHandler        *handler.IntakeHandler
	healthProfileHandler *handler.HealthProfileHandler
	documentHandler      *handler.DocumentHandler
	goalHandler          *handler.GoalHandler
	appointmentHandler   *handler.AppointmentHandler
	insightHandler       *handler.InsightHandler
	chatHandler          *handler.ChatHandler
	dashboardHandler     *handler.DashboardHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	serviceAuth          *middleware.ServiceAuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	httpMetrics          *metrics.HTTPMetrics
	metricsHandler       http.Handler
}

// Handlers groups the route handlers.
type Handlers struct {
	Auth          *handler.AuthHandler
	Intake        *handler.IntakeHandler
	HealthProfile *handler.HealthProfileHandler
	Document      *handler.DocumentHandler
	Goal          *handler.GoalHandler
	Appointment   *handler.AppointmentHandler
	Insight       *handler.InsightHandler
	Chat          *handler.ChatHandler
	Dashboard     *handler.DashboardHandler
	AuditLog      *handler.AuditLogHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	serviceAuth *middleware.ServiceAuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	httpMetrics *metrics.HTTPMetrics,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          handlers.Auth,
		intakeHandler:        handlers.Intake,
		healthProfileHandler: handlers.HealthProfile,
		documentHandler:      handlers.Document,
		goalHandler:          handlers.Goal,
		appointmentHandler:   handlers.Appointment,
		insightHandler:       handlers.Insight,
		chatHandler:          handlers.Chat,
		dashboardHandler:     handlers.Dashboard,
		auditLogHandler:      handlers.AuditLog,
		authMiddleware:       authMiddleware,
		serviceAuth:          serviceAuth,
		corsMiddleware:       corsMiddleware,
		httpMetrics:          httpMetrics,
		metricsHandler:       promhttp.Handler(),
	}
}

func (r *Router) Setup() *mux.Router {
	// Prometheus scrape endpoint
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// Save endpoint called by the intake completion step; requires the service token
	r.router.Handle("/api/save_data", r.serviceAuth.Authenticate(http.HandlerFunc(r.healthProfileHandler.SaveData))).Methods(http.MethodPost, http.MethodOptions)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Everything else requires a bearer token
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Auth routes
	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Intake
	protected.HandleFunc("/intake", r.intakeHandler.GetState).Methods(http.MethodGet)
	intake := protected.PathPrefix("/intake").Subrouter()
	intake.HandleFunc("/fields", r.intakeHandler.GetFields).Methods(http.MethodGet)
	intake.HandleFunc("/sections/{section}", r.intakeHandler.UpdateSection).Methods(http.MethodPut)
	intake.HandleFunc("/updates", r.intakeHandler.ApplyUpdate).Methods(http.MethodPost)
	intake.HandleFunc("/steps/{step:[0-9]+}", r.intakeHandler.GoToStep).Methods(http.MethodPost)
	intake.HandleFunc("/advance", r.intakeHandler.Advance).Methods(http.MethodPost)
	intake.HandleFunc("/retreat", r.intakeHandler.Retreat).Methods(http.MethodPost)
	intake.HandleFunc("/complete", r.intakeHandler.Complete).Methods(http.MethodPost)
	intake.HandleFunc("/demo", r.intakeHandler.LoadDemo).Methods(http.MethodPost)
	intake.HandleFunc("/export.pdf", r.intakeHandler.ExportPDF).Methods(http.MethodGet)
	intake.HandleFunc("/export.xlsx", r.intakeHandler.ExportXLSX).Methods(http.MethodGet)

	// Saved profile and activity
	protected.HandleFunc("/profile", r.healthProfileHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/activity", r.auditLogHandler.GetActivity).Methods(http.MethodGet)
	protected.HandleFunc("/activity/{id:[0-9]+}", r.auditLogHandler.GetActivityEntry).Methods(http.MethodGet)

	// Insights
	protected.HandleFunc("/insights/health-plan", r.insightHandler.GetHealthPlan).Methods(http.MethodPost)
	protected.HandleFunc("/medicines/analyze", r.insightHandler.AnalyzeMedicine).Methods(http.MethodPost)

	// Health assistant chat
	protected.HandleFunc("/chat", r.chatHandler.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chat", r.chatHandler.GetHistory).Methods(http.MethodGet)
	protected.HandleFunc("/chat", r.chatHandler.ClearHistory).Methods(http.MethodDelete)

	// Documents
	protected.HandleFunc("/documents", r.documentHandler.CreateDocument).Methods(http.MethodPost)
	protected.HandleFunc("/documents", r.documentHandler.GetAllDocuments).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{id}", r.documentHandler.GetDocument).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{id}", r.documentHandler.DeleteDocument).Methods(http.MethodDelete)

	// Goals
	protected.HandleFunc("/goals", r.goalHandler.CreateGoal).Methods(http.MethodPost)
	protected.HandleFunc("/goals", r.goalHandler.GetAllGoals).Methods(http.MethodGet)
	protected.HandleFunc("/goals/suggestions", r.goalHandler.GetSuggestions).Methods(http.MethodGet)
	protected.HandleFunc("/goals/{id}", r.goalHandler.UpdateGoalStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/goals/{id}", r.goalHandler.DeleteGoal).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Dashboard
	protected.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)

	// Add CORS and request metrics middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.httpMetrics.Middleware)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
