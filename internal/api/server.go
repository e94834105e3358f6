package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// Server exposes the booking backend over HTTP.
type Server struct {
	cfg      config.APIConfig
	bookings *service.BookingService
	users    *service.UserService
	items    *service.ItemService
	requests *service.RequestService
	exporter *export.Exporter
	validate *validator.Validate
	logger   zerolog.Logger
	handler  http.Handler
	server   *http.Server
}

func NewServer(
	cfg config.APIConfig,
	bookings *service.BookingService,
	users *service.UserService,
	items *service.ItemService,
	requests *service.RequestService,
	exporter *export.Exporter,
	limiter domain.RateLimiter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		bookings: bookings,
		users:    users,
		items:    items,
		requests: requests,
		exporter: exporter,
		validate: validator.New(),
		logger:   logger.With().Str("component", "http").Logger(),
	}

	router := httprouter.New()

	router.POST("/bookings", s.createBooking)
	router.GET("/bookings", s.listBookerBookings)
	// httprouter не позволяет смешивать статические сегменты с :bookingId,
	// поэтому owner и export обрабатываются внутри getBooking.
	router.GET("/bookings/:bookingId", s.getBooking)
	router.PATCH("/bookings/:bookingId", s.decideBooking)

	router.POST("/users", s.createUser)
	router.GET("/users", s.listUsers)
	router.GET("/users/:userId", s.getUser)
	router.PATCH("/users/:userId", s.updateUser)
	router.DELETE("/users/:userId", s.deleteUser)

	router.POST("/requests", s.createRequest)
	router.GET("/requests", s.listOwnRequests)
	// all диспетчеризуется внутри getRequest
	router.GET("/requests/:requestId", s.getRequest)

	router.POST("/items", s.createItem)
	router.GET("/items", s.listOwnerItems)
	// search диспетчеризуется внутри getItem по той же причине, что и выше
	router.GET("/items/:itemId", s.getItem)
	router.PATCH("/items/:itemId", s.updateItem)
	router.POST("/items/:itemId/comments", s.addComment)

	s.handler = requestIDMiddleware(
		loggingMiddleware(&s.logger,
			rateLimitMiddleware(limiter, &s.logger, router)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

// Handler returns the full middleware chain; used by tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// userIDFromHeader извлекает доверенный идентификатор пользователя.
func userIDFromHeader(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(headerUserID))
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", headerUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", headerUserID)
	}
	return id, nil
}

func pathID(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// parsePagination reads from/size with the defaults of the listing endpoints.
func parsePagination(r *http.Request) (int, int, error) {
	from := 0
	size := 10

	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, fmt.Errorf("from must be a non-negative integer")
		}
		from = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, fmt.Errorf("size must be a positive integer")
		}
		size = parsed
	}
	return from, size, nil
}
