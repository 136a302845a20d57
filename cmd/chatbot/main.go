package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlafitness/backend/internal/chat"
	"github.com/mlafitness/backend/internal/config"
	"github.com/mlafitness/backend/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.chatbot.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "chatbot-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using chat model: [%s]", cfg.ChatModel)

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatalf("mongo uri not set, use MONGO_URI env var to set it")
	}
	if mongoDB := os.Getenv("MONGO_DB"); mongoDB != "" {
		cfg.MongoDBName = mongoDB
	}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		log.Fatalf("openai api key not set, use OPENAI_API_KEY env var to set it")
	}

	redisPassword := os.Getenv("REDIS_PASS")
	if cfg.RedisHost != "" && redisPassword == "" {
		log.Errorf("redis password not set. use REDIS_PASS")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := chat.NewServer(ctx, chat.NewServerParams{
		Config:        cfg,
		MongoURI:      mongoURI,
		OpenAIAPIKey:  openAIAPIKey,
		RedisPassword: redisPassword,
	})
	if err != nil {
		log.Fatalf("new chatbot server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
