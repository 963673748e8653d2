package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-triage/internal/api/http"
	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
	"github.com/spec-kit/ticket-triage/internal/capability"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/notify"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/persistence"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/triage"
	"github.com/spec-kit/ticket-triage/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(dispatcher, buildNotifier(cfg.Notification, logger), logger)
	deadLetterQueue := persistence.NewRedisDeadLetterQueue(redis, cfg.DeadLetter.QueueKey)
	deadLetterService := service.NewDeadLetterService(dispatcher, deadLetterQueue, logger)
	worker.StartSubscribers(notificationService, deadLetterService)

	languageClient := capability.NewLanguageClient(cfg.Language)
	gateway := capability.NewAgentGatewayClient(cfg.Responder, cfg.Routing.Agents, logger)

	pipeline := triage.NewPipeline(cfg.Triage.ConfidenceThreshold, triage.Dependencies{
		Normalizer: triage.NewNormalizer(languageClient, cfg.Triage.WorkingLanguage, logger),
		Classifier: triage.NewClassifier(gateway, cfg.Routing.ClassifierAgent, logger),
		Router:     triage.NewRouter(buildRoutes(cfg.Routing), gateway, metrics, logger),
		Escalation: triage.NewEscalationDispatcher(dispatcher, notifyTopics(cfg.Routing), cfg.Routing.UrgencyPhrases, logger),
		Events:     dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Triage: handlers.NewTriageHandler(pipeline),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildRoutes projects the configured agent table onto the closed topic set.
func buildRoutes(routing config.RoutingConfig) map[domain.Topic]string {
	routes := make(map[domain.Topic]string)
	for _, topic := range domain.AllTopics() {
		if _, ok := routing.Agents[string(topic)]; ok {
			routes[topic] = string(topic)
		}
	}
	return routes
}

func notifyTopics(routing config.RoutingConfig) []domain.Topic {
	topics := make([]domain.Topic, 0, len(routing.NotifyTopics))
	for _, topic := range routing.NotifyTopics {
		topics = append(topics, domain.Topic(topic))
	}
	return topics
}

func buildNotifier(cfg config.NotificationConfig, logger *zap.Logger) notify.Notifier {
	if cfg.StandardWebhookURL == "" && cfg.UrgentWebhookURL == "" {
		return notify.NewLogNotifier(logger)
	}
	return notify.NewWebhookNotifier(map[string]string{
		notify.ChannelSupport: cfg.StandardWebhookURL,
		notify.ChannelUrgent:  cfg.UrgentWebhookURL,
	}, cfg.EmailFrom, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
