package stats

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/mlafitness/backend/internal/config"
	"github.com/mlafitness/backend/internal/exercises"
	"github.com/mlafitness/backend/internal/middleware"
	"github.com/mlafitness/backend/internal/telemetry/metrics"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	mongoClient *mongo.Client
	handler     *Handler

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config   *config.Config
	MongoURI string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	mongoClient, mongoDB, err := exercises.Connect(
		ctx,
		params.MongoURI,
		params.Config.MongoDBName,
		time.Duration(params.Config.MongoConnectTimeoutS)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("connect to records store: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitness", "analytics", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	analyzer := NewAnalyzer(exercises.NewRepo(mongoDB))

	return &Server{
		config:         params.Config,
		mongoClient:    mongoClient,
		handler:        NewHandler(analyzer, metricsManager),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("analytics"))

	r.HandleFunc("/", s.handler.HandleAllRecords).Methods("GET", "OPTIONS").Name("all-records")
	r.HandleFunc("/stats", s.handler.HandleStats).Methods("GET", "OPTIONS").Name("stats")
	r.HandleFunc("/stats/daily_trend/{username}", s.handler.HandleDailyTrend).Methods("GET", "OPTIONS").Name("daily-trend")
	r.HandleFunc("/stats/weekly/", s.handler.HandleWeeklyStats).Methods("GET", "OPTIONS").Name("weekly-stats")
	r.HandleFunc("/stats/{username}", s.handler.HandleUserStats).Methods("GET", "OPTIONS").Name("user-stats")
	r.HandleFunc("/health", s.handler.HandleHealth).Methods("GET", "OPTIONS").Name("health")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > analytics server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("analytics service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := 15 * time.Second
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.httpServer.Shutdown(ctx))
	}
	if s.metricsHttpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.metricsHttpServer.Shutdown(ctx))
	}
	if s.mongoClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.mongoClient.Disconnect(ctx))
	}
	if shutdownErr != nil {
		log.Errorf(" >>> failed to gracefully shut down: %s", shutdownErr)
	}

	if s.config.SentryEnabled {
		if ok := sentry.Flush(5 * time.Second); !ok {
			log.Warnln("sentry flush timed out")
		}
	}

	log.Warnln("analytics server shut down")
}
