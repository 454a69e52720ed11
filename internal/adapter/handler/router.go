package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/warf-hq/warf-backend/internal/infrastructure/http/middleware"
	"github.com/warf-hq/warf-backend/internal/usecase/auth"
	"github.com/warf-hq/warf-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authService    auth.Service
	authHandler    *Auth
	meetingHandler *Meeting
	minutesHandler *Minutes
	taskHandler    *Task
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authService auth.Service,
	authHandler *Auth,
	meetingHandler *Meeting,
	minutesHandler *Minutes,
	taskHandler *Task,
) *Router {
	return &Router{
		cfg:            cfg,
		authService:    authService,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		minutesHandler: minutesHandler,
		taskHandler:    taskHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	authed := middleware.EchoAuth(rt.authService)
	admin := middleware.RequireAdmin()

	// Auth
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/register", rt.authHandler.Register, authed, admin)
	authGroup.POST("/logout", rt.authHandler.Logout, authed)
	authGroup.GET("/me", rt.authHandler.Me, authed)
	authGroup.POST("/me/face", rt.authHandler.UploadFaceImage, authed)

	// Meetings
	meetingGroup := v1.Group("/meetings", authed)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.POST("", rt.meetingHandler.Create, admin)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.GET("/:id/can-join", rt.meetingHandler.CanJoin)
	meetingGroup.POST("/:id/verify-face", rt.meetingHandler.VerifyFace)
	meetingGroup.POST("/:id/transcript", rt.meetingHandler.UploadTranscript)
	meetingGroup.GET("/:id/attendees", rt.meetingHandler.Attendees)

	// Minutes live under their meeting
	meetingGroup.GET("/:id/minutes", rt.minutesHandler.Get)
	meetingGroup.PUT("/:id/minutes", rt.minutesHandler.SaveDiscussionPoints)
	meetingGroup.POST("/:id/minutes/generate", rt.minutesHandler.GenerateAI)
	meetingGroup.POST("/:id/minutes/review", rt.minutesHandler.SendToReview)
	meetingGroup.POST("/:id/minutes/approve", rt.minutesHandler.Approve, admin)
	meetingGroup.POST("/:id/minutes/unlock", rt.minutesHandler.Unlock, admin)
	meetingGroup.POST("/:id/tasks/materialize", rt.taskHandler.Materialize, admin)
	meetingGroup.GET("/:id/tasks", rt.taskHandler.ListByMeeting)

	minutesGroup := v1.Group("/minutes", authed)
	minutesGroup.GET("", rt.minutesHandler.List)

	// Tasks
	taskGroup := v1.Group("/tasks", authed)
	taskGroup.GET("/mine", rt.taskHandler.ListMine)
	taskGroup.GET("/:id", rt.taskHandler.Get)
	taskGroup.POST("/:id/submit", rt.taskHandler.SubmitSolution)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
