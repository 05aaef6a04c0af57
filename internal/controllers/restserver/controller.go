// Package restserver exposes the estimation engine over HTTP.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/glazecalc/glazecalc/internal/log"
	"github.com/glazecalc/glazecalc/pkg/config"
	"github.com/glazecalc/glazecalc/pkg/estimate"
	"github.com/glazecalc/glazecalc/pkg/units"
)

type contextKey string

const requestIDContextKey contextKey = "request-id"

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	serverConfig   config.ServerData
	defaults       config.DefaultsData
	Server         http.Server
	estimator      *estimate.Estimator
	presets        map[string]estimate.ReferenceCalibration
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		logger:         logger,
	}

	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	if cfgData.Server.Port == 0 {
		return nil, fmt.Errorf("REST server has no port configured")
	}
	ctrl.serverConfig = cfgData.Server
	ctrl.defaults = cfgData.Defaults

	// Built-in presets first, then operator-configured ones, which may
	// shadow a built-in of the same name.
	ctrl.presets = make(map[string]estimate.ReferenceCalibration)
	for _, p := range estimate.Presets() {
		ctrl.presets[p.Name] = p.Calibration
	}
	for _, p := range cfgData.Presets {
		unit, err := units.ParseUValueUnit(p.Unit)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %v", p.Name, err)
		}
		ctrl.presets[p.Name] = estimate.ReferenceCalibration{
			GlassU1: p.GlassU1, TotalU1: p.TotalU1,
			GlassU2: p.GlassU2, TotalU2: p.TotalU2,
			Unit: unit,
		}
	}

	if cfgData.Defaults.Preset != "" {
		if _, ok := ctrl.presets[cfgData.Defaults.Preset]; !ok {
			return nil, fmt.Errorf("default preset %q is not defined", cfgData.Defaults.Preset)
		}
	}

	var opts []estimate.Option
	if cfgData.Defaults.StrictAreas {
		opts = append(opts, estimate.WithStrictAreas())
	}
	ctrl.estimator = estimate.New(opts...)

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server = http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfgData.Server.ListenAddr, cfgData.Server.Port),
		Handler:      ctrl.setupRouter(),
		ReadTimeout:  time.Duration(cfgData.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfgData.Server.WriteTimeout) * time.Second,
	}

	return ctrl, nil
}

// StartController starts the HTTP listener and wires shutdown to the
// controller context.
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		log.Infof("REST server listening on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.requestIDMiddleware)
	router.Use(c.loggingMiddleware)

	router.HandleFunc("/health", c.handlers.GetHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/presets", c.handlers.GetPresets).Methods(http.MethodGet)
	router.HandleFunc("/api/estimate", c.handlers.PostEstimate).Methods(http.MethodPost)
	router.HandleFunc("/api/sweep", c.handlers.PostSweep).Methods(http.MethodPost)
	router.HandleFunc("/api/datasheet", c.handlers.PostDatasheet).Methods(http.MethodPost)

	return router
}

// requestIDMiddleware tags every request with a UUID, echoed in the
// X-Request-ID response header and attached to log lines.
func (c *Controller) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs one line per request with status and duration.
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		c.logger.Infow("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"request_id", requestIDFrom(r),
		)
	})
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
