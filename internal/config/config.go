package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Triage       TriageConfig
	Language     LanguageConfig
	Responder    ResponderConfig
	Notification NotificationConfig
	DeadLetter   DeadLetterConfig
	Routing      RoutingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TriageConfig controls the classification gate and working language.
type TriageConfig struct {
	WorkingLanguage     string
	ConfidenceThreshold float64
}

// LanguageConfig points at the language detection/translation service.
type LanguageConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// ResponderConfig points at the agent gateway hosting the responder agents.
type ResponderConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

// NotificationConfig holds escalation delivery endpoints.
type NotificationConfig struct {
	StandardWebhookURL string
	UrgentWebhookURL   string
	EmailFrom          string
}

// DeadLetterConfig names the failure queue.
type DeadLetterConfig struct {
	QueueKey string
}

// RoutingConfig is the topic-to-agent table plus escalation rules. Defaults
// are built in; a YAML file (TRIAGE_ROUTES_FILE, default triage.yaml) may
// override any of it per deployment.
type RoutingConfig struct {
	ClassifierAgent string                `yaml:"classifier_agent"`
	Agents          map[string]AgentRoute `yaml:"agents"`
	NotifyTopics    []string              `yaml:"notify_topics"`
	UrgencyPhrases  []string              `yaml:"urgency_phrases"`
}

// AgentRoute identifies one responder agent at the gateway.
type AgentRoute struct {
	AgentID string `yaml:"agent_id"`
	AliasID string `yaml:"alias_id"`
}

// Load reads configuration from environment variables, applying defaults
// where possible. The routing table additionally layers an optional YAML file
// under the env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	routing, err := loadRouting(getEnv("TRIAGE_ROUTES_FILE", "triage.yaml"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-triage-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Triage: TriageConfig{
			WorkingLanguage:     getEnv("TRIAGE_WORKING_LANGUAGE", "en"),
			ConfidenceThreshold: getEnvAsFloat("TRIAGE_CONFIDENCE_THRESHOLD", 0.7),
		},
		Language: LanguageConfig{
			BaseURL:        getEnv("LANGUAGE_SERVICE_URL", "http://127.0.0.1:9090"),
			TimeoutSeconds: getEnvAsInt("LANGUAGE_SERVICE_TIMEOUT_SECONDS", 15),
		},
		Responder: ResponderConfig{
			BaseURL:        getEnv("AGENT_GATEWAY_URL", "http://127.0.0.1:9091"),
			Token:          os.Getenv("AGENT_GATEWAY_TOKEN"),
			TimeoutSeconds: getEnvAsInt("AGENT_GATEWAY_TIMEOUT_SECONDS", 30),
		},
		Notification: NotificationConfig{
			StandardWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			UrgentWebhookURL:   getEnv("NOTIFY_URGENT_WEBHOOK_URL", ""),
			EmailFrom:          getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
		},
		DeadLetter: DeadLetterConfig{
			QueueKey: getEnv("DEAD_LETTER_QUEUE_KEY", "triage:dead-letter"),
		},
		Routing: routing,
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the language-service call timeout.
func (l LanguageConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Timeout returns the agent-gateway call timeout.
func (r ResponderConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func defaultRouting() RoutingConfig {
	return RoutingConfig{
		ClassifierAgent: "main",
		Agents: map[string]AgentRoute{
			"main":              {AgentID: "main"},
			"cost_optimization": {AgentID: "cost_optimization"},
			"security":          {AgentID: "security"},
			"alarm":             {AgentID: "alarm"},
			"custom":            {AgentID: "custom"},
		},
		NotifyTopics: []string{"custom"},
		UrgencyPhrases: []string{
			"full outage",
			"complete outage",
			"down for all users",
			"data exposure",
			"data breach",
			"data leak",
		},
	}
}

func loadRouting(path string) (RoutingConfig, error) {
	routing := defaultRouting()
	data, err := os.ReadFile(path)
	if err != nil {
		// the file is optional; built-in defaults apply
		return routing, nil
	}
	if err := yaml.Unmarshal(data, &routing); err != nil {
		return routing, fmt.Errorf("parse routing file %s: %w", path, err)
	}
	if routing.ClassifierAgent == "" {
		routing.ClassifierAgent = "main"
	}
	return routing, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
