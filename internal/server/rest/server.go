// Package rest exposes the carbook services over HTTP/JSON: public signup
// and login plus bearer-token protected booking CRUD.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imorozov/carbook/internal/logging"
	"github.com/imorozov/carbook/internal/server/config"
	"github.com/imorozov/carbook/internal/server/services"
)

type RESTServer struct {
	address        string
	users          *services.UserService
	bookings       *services.BookingService
	logger         logging.Logger
	jwtSecret      []byte
	allowedOrigins []string
	requestTimeout time.Duration
}

func NewRESTServer(l logging.Logger, us *services.UserService, bs *services.BookingService, cfg *config.Config) (*RESTServer, error) {
	return &RESTServer{
		address:        cfg.EndpointAddrHTTP,
		logger:         l.With("module", "rest_server"),
		users:          us,
		bookings:       bs,
		jwtSecret:      []byte(cfg.SecretKey),
		allowedOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

// Router builds the gin engine with all routes and middleware attached.
func (s *RESTServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.allowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.handleHealth)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", s.handleSignup)
		authRoutes.POST("/login", s.handleLogin)
	}

	protected := router.Group("/bookings")
	protected.Use(s.authRequired())
	{
		protected.POST("", s.handleCreateBooking)
		protected.GET("", s.handleGetBookings)
		protected.PUT("/:bookingId", s.handleUpdateBooking)
		protected.DELETE("/:bookingId", s.handleDeleteBooking)
	}

	return router
}

func (s *RESTServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "carbook-api"})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  s.requestTimeout,
		WriteTimeout: s.requestTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
