package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classdesk/classroom-api/internal/api/handler"
	"github.com/classdesk/classroom-api/internal/api/middleware"
	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
	"github.com/classdesk/classroom-api/internal/core/token"
)

// Deps carries everything the router needs. Mongo and Redis are only used by
// the readiness probe and may be nil in tests.
type Deps struct {
	Logger      zerolog.Logger
	Codec       *token.Codec
	Users       ports.UserRepository
	Auth        ports.AuthService
	Assignments ports.AssignmentService
	Submissions ports.SubmissionService
	Mongo       *mongo.Database
	Redis       *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("classroom"))
	e.Use(middleware.Identity(deps.Codec, deps.Users))

	authHandler := handler.NewAuthHandler(deps.Auth)
	assignmentHandler := handler.NewAssignmentHandler(deps.Assignments)
	submissionHandler := handler.NewSubmissionHandler(deps.Submissions)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Assignment routes ---
	// Role-scoped reads and creates are gated per route; edit and delete are
	// additionally ownership-checked in the service after the fetch.
	assignments := e.Group("/api/assignments")
	assignments.POST("/add", assignmentHandler.Create, middleware.Authorize(domain.CanCreateAssignment))
	assignments.GET("/myAssignment", assignmentHandler.ListMine, middleware.Authorize(domain.CanViewOwnAssignments))
	assignments.GET("/available", assignmentHandler.ListAvailable, middleware.Authorize(domain.CanViewAvailableAssignments))
	assignments.PUT("/edit/:id", assignmentHandler.Update)
	assignments.DELETE("/delete/:id", assignmentHandler.Delete)

	// --- Submission routes ---
	submissions := e.Group("/api/submissions")
	submissions.POST("/submit", submissionHandler.Submit, middleware.Authorize(domain.CanSubmitAssignment))
	submissions.GET("/my", submissionHandler.ListMine, middleware.Authorize(domain.CanViewOwnSubmissions))
	submissions.GET("/assignment/:id", submissionHandler.ListForAssignment)
	submissions.PUT("/update-status/:id", submissionHandler.UpdateStatus)

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Mongo != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(deps.Mongo, deps.Redis).Readiness)
	}

	return e
}
