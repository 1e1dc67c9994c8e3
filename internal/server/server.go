package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/akashduggal/passr-backend/internal/config"
	"github.com/akashduggal/passr-backend/internal/handler"
	"github.com/akashduggal/passr-backend/internal/repository"
	"github.com/akashduggal/passr-backend/internal/service"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

type Server struct {
	e     *echo.Echo
	log   zerolog.Logger
	sha   string
	build string
}

func New(sessions repository.SessionRepository, cfg *config.Config, clock timeutil.Clock, log zerolog.Logger, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			for _, allowed := range cfg.AllowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true, nil
				}
			}
			return false, nil
		},
	}))

	convSvc := service.NewConversationService(sessions, clock)
	schedSvc := service.NewScheduleService(sessions, clock)
	sessionHandler := handler.NewSessionHandler(convSvc)
	scheduleHandler := handler.NewScheduleHandler(schedSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/sessions", sessionHandler.Create)
	api.GET("/sessions/:id", sessionHandler.Get)
	api.DELETE("/sessions/:id", sessionHandler.End)
	api.GET("/sessions/:id/messages", sessionHandler.ListMessages)
	api.POST("/sessions/:id/messages", sessionHandler.SendMessage)
	api.POST("/sessions/:id/offer/accept", sessionHandler.AcceptOffer)
	api.POST("/sessions/:id/schedule", scheduleHandler.Open)
	api.GET("/sessions/:id/schedule/dates", scheduleHandler.Dates)
	api.PUT("/sessions/:id/schedule/date", scheduleHandler.SelectDate)
	api.PUT("/sessions/:id/schedule/time", scheduleHandler.SelectTime)
	api.PUT("/sessions/:id/schedule/note", scheduleHandler.SetNote)
	api.POST("/sessions/:id/schedule/confirm", scheduleHandler.Confirm)
	api.DELETE("/sessions/:id/schedule", scheduleHandler.Cancel)

	return &Server{e: e, log: log, sha: sha, build: buildTime}
}

func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

// Echo exposes the router for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
