package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/floorida/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Schedule *apiHandler.ScheduleHandler
	Team     *apiHandler.TeamHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/schedules", authMiddleware(handlers.Schedule.GetMonth))
	r.POST("/api/v1/schedules", authMiddleware(handlers.Schedule.CreateSchedule))
	r.PUT("/api/v1/schedules/{id}", authMiddleware(handlers.Schedule.UpdateSchedule))
	r.DELETE("/api/v1/schedules/{id}", authMiddleware(handlers.Schedule.DeleteSchedule))
	r.POST("/api/v1/schedules/{id}/subtasks/{subID}/toggle", authMiddleware(handlers.Schedule.ToggleSubtask))

	r.POST("/api/v1/teams", authMiddleware(handlers.Team.CreateTeam))
	r.POST("/api/v1/teams/join", authMiddleware(handlers.Team.JoinTeam))
	r.GET("/api/v1/teams/{id}/floors", authMiddleware(handlers.Team.GetFloors))
	r.POST("/api/v1/teams/{id}/floors", authMiddleware(handlers.Team.CreateFloor))
	r.POST("/api/v1/team-floors/{id}/complete", authMiddleware(handlers.Team.CompleteFloor))
	r.POST("/api/v1/team-floors/{id}/cancel", authMiddleware(handlers.Team.CancelFloor))

	return r
}
