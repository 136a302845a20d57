package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
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
	redisClient *redis.Client
	rateLimiter *redis_rate.Limiter
	handler     *Handler

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config        *config.Config
	MongoURI      string
	OpenAIAPIKey  string
	RedisPassword string

	// SuggestionSeed pins the suggestion pool picks; 0 means time-seeded.
	SuggestionSeed int64
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
	metricsManager := metrics.NewManager("fitness", "chatbot", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var redisClient *redis.Client
	var rateLimiter *redis_rate.Limiter
	if params.Config.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		rateLimiter = redis_rate.NewLimiter(redisClient)
	} else {
		log.Warnln("redis host not set, chat rate limiting disabled")
	}

	history, err := NewHistory()
	if err != nil {
		return nil, fmt.Errorf("create conversation history: %w", err)
	}

	client := NewClient(NewClientParams{
		APIKey:         params.OpenAIAPIKey,
		Model:          params.Config.ChatModel,
		MaxTokens:      params.Config.ChatMaxTokens,
		Timeout:        time.Duration(params.Config.ChatTimeoutSeconds) * time.Second,
		MetricsManager: metricsManager,
	})

	seed := params.SuggestionSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	handler := NewHandler(NewHandlerParams{
		History:        history,
		ContextBuilder: NewContextBuilder(exercises.NewRepo(mongoDB)),
		Client:         client,
		Engine:         NewEngine(seed),
		MetricsManager: metricsManager,
		PingStore: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
	})

	return &Server{
		config:         params.Config,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		rateLimiter:    rateLimiter,
		handler:        handler,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("chatbot"))

	chatHandler := http.Handler(http.HandlerFunc(s.handler.HandleChat))
	if s.rateLimiter != nil {
		chatHandler = middleware.RateLimit(
			s.rateLimiter, "chat", s.config.ChatPerMinLimit, s.metricsManager,
		)(chatHandler)
	}

	r.Handle("/api/chat", chatHandler).Methods("POST", "OPTIONS").Name("chat")
	r.HandleFunc("/api/chat/suggestions", s.handler.HandleSuggestions).Methods("GET", "OPTIONS").Name("chat-suggestions")
	r.HandleFunc("/api/chat/reset", s.handler.HandleReset).Methods("POST", "OPTIONS").Name("chat-reset")
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
		log.Infof(" > chatbot server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("chatbot service, listen and serve: %s", err)
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
	if s.redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.redisClient.Close())
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

	log.Warnln("chatbot server shut down")
}
