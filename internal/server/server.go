package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/plushka/stitchfarm/internal/account"
	"github.com/plushka/stitchfarm/internal/database"
	"github.com/plushka/stitchfarm/internal/farm"
	"github.com/plushka/stitchfarm/internal/handler"
	"github.com/plushka/stitchfarm/internal/logger"
	"github.com/plushka/stitchfarm/internal/market"
	"github.com/plushka/stitchfarm/internal/metrics"
	"github.com/plushka/stitchfarm/internal/stitch"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	accountService account.Service
	farmService    farm.Service
	marketService  market.Service
	stitchService  stitch.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, accountService account.Service, farmService farm.Service, marketService market.Service, stitchService stitch.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		farmHandler := handler.NewFarmHandler(farmService)
		r.Route("/farm", func(r chi.Router) {
			r.Get("/plots", farmHandler.HandleGetPlots)
			r.Get("/trees", farmHandler.HandleGetTrees)
			r.Get("/pens", farmHandler.HandleGetPens)

			r.Route("/plots", func(r chi.Router) {
				r.Post("/plant", farmHandler.HandlePlant)
				r.Post("/harvest", farmHandler.HandleHarvestPlot)
				r.Post("/clear", farmHandler.HandleClearPlot)
			})
			r.Route("/trees", func(r chi.Router) {
				r.Post("/plant", farmHandler.HandlePlantTree)
				r.Post("/harvest", farmHandler.HandleHarvestTree)
				r.Post("/clear", farmHandler.HandleClearTree)
			})
			r.Route("/pens", func(r chi.Router) {
				r.Post("/feed", farmHandler.HandleFeed)
				r.Post("/collect", farmHandler.HandleCollect)
				r.Post("/place-animal", farmHandler.HandlePlaceAnimal)
			})
		})

		shopHandler := handler.NewShopHandler(farmService)
		r.Route("/shop", func(r chi.Router) {
			r.Post("/plot", shopHandler.HandleBuyPlot)
			r.Post("/pen", shopHandler.HandleBuyPen)
			r.Post("/tree", shopHandler.HandleBuyTree)
		})

		marketHandler := handler.NewMarketHandler(marketService)
		r.Route("/market", func(r chi.Router) {
			r.Post("/sell-to-system", marketHandler.HandleSellToSystem)
			r.Post("/list", marketHandler.HandleListForSale)
			r.Post("/buy", marketHandler.HandleBuyListing)
			r.Post("/cancel", marketHandler.HandleCancelListing)
			r.Get("/listings", marketHandler.HandleGetListings)
			r.Get("/my-listings", marketHandler.HandleGetMyListings)
		})

		stitchHandler := handler.NewStitchHandler(stitchService)
		r.Route("/stitch", func(r chi.Router) {
			r.Post("/code-word", stitchHandler.HandleRequestCodeWord)
			r.Post("/submit", stitchHandler.HandleSubmitTask)
			r.Post("/review", stitchHandler.HandleCastReview)
			r.Get("/pending", stitchHandler.HandleGetPending)
			r.Get("/mine", stitchHandler.HandleGetMine)
		})

		profileHandler := handler.NewProfileHandler(accountService)
		r.Get("/profile", profileHandler.HandleGetProfile) // Handle /profile exactly
		r.Route("/profile", func(r chi.Router) {
			r.Post("/ensure", profileHandler.HandleEnsureProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", profileHandler.HandleGetCacheStats)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		accountService: accountService,
		farmService:    farmService,
		marketService:  marketService,
		stitchService:  stitchService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
