package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkwarude-cell/smartheal-sub001/internal/config"
	"github.com/dkwarude-cell/smartheal-sub001/internal/handlers"
	"github.com/dkwarude-cell/smartheal-sub001/internal/middleware"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
	alertws "github.com/dkwarude-cell/smartheal-sub001/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	athleteProfileRepo := repository.NewAthleteProfileRepository(db)
	coachProfileRepo := repository.NewCoachProfileRepository(db)
	healthProfileRepo := repository.NewHealthProfileRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	painRepo := repository.NewPainRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	protocolRepo := repository.NewProtocolRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	alertHub := alertws.NewHub()
	go alertHub.Run()

	sessionService := services.NewSessionService(db, sessionRepo, userRepo)
	dashboardService := services.NewDashboardService(athleteProfileRepo, workoutRepo, sessionRepo)
	teamService := services.NewTeamService(athleteProfileRepo, alertHub)
	wellnessService := services.NewWellnessService(healthProfileRepo, painRepo, taskRepo)
	protocolService := services.NewProtocolService(protocolRepo, athleteProfileRepo, sessionRepo, storageService)

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		athleteProfileRepo,
		coachProfileRepo,
		healthProfileRepo,
		cfg.JWTSecret,
	)
	onboardingHandler := handlers.NewOnboardingHandler(athleteProfileRepo, coachProfileRepo, healthProfileRepo)
	profileHandler := handlers.NewProfileHandler(athleteProfileRepo, coachProfileRepo, healthProfileRepo, storageService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	teamHandler := handlers.NewTeamHandler(teamService, userRepo, athleteProfileRepo)
	wellnessHandler := handlers.NewWellnessHandler(wellnessService)
	protocolHandler := handlers.NewProtocolHandler(protocolService)
	alertWSHandler := handlers.NewAlertWSHandler(teamService, alertHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	onboarding := authProtected.Group("/onboarding")
	onboarding.Post("/athlete", onboardingHandler.AthleteOnboarding)
	onboarding.Post("/coach", onboardingHandler.CoachOnboarding)
	onboarding.Post("/health", onboardingHandler.HealthOnboarding)

	profile := authProtected.Group("/profile")
	profile.Get("", profileHandler.GetProfile)
	profile.Post("/avatar", profileHandler.UploadAvatar)
	profile.Post("/check-in", profileHandler.CheckIn)

	sessions := authProtected.Group("/sessions")
	sessions.Post("", sessionHandler.ScheduleSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Patch("/:id/status", sessionHandler.UpdateStatus)
	sessions.Post("/:id/complete", sessionHandler.CompleteSession)

	workouts := authProtected.Group("/workouts")
	workouts.Post("", workoutHandler.LogWorkout)
	workouts.Get("", workoutHandler.ListWorkouts)

	authProtected.Get("/dashboard", dashboardHandler.GetAthleteDashboard)

	team := authProtected.Group("/team")
	team.Get("/overview", teamHandler.GetOverview)
	team.Get("/alerts", teamHandler.GetAlerts)
	team.Post("/athletes", teamHandler.AddAthlete)

	wellness := authProtected.Group("/wellness")
	wellness.Get("/summary", wellnessHandler.GetSummary)
	wellness.Get("/tasks", wellnessHandler.ListTasks)
	wellness.Post("/tasks/complete", wellnessHandler.CompleteTask)
	wellness.Post("/pain", wellnessHandler.LogPain)
	wellness.Get("/pain", wellnessHandler.ListPainHistory)

	protocols := authProtected.Group("/protocols")
	protocols.Post("", protocolHandler.CreateProtocol)
	protocols.Get("", protocolHandler.ListProtocols)
	protocols.Get("/:id/download", protocolHandler.DownloadProtocol)

	api.Use("/v1/ws/alerts", alertWSHandler.WebSocketAuth)
	api.Get("/v1/ws/alerts", websocket.New(alertWSHandler.HandleWebSocket))
}
