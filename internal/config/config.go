package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	SupabaseURL        string
	SupabaseServiceKey string
	MySQLDSN           string

	FCMServiceAccount string
	FCMProjectID      string
	FCMEndpoint       string
	OAuthTokenURL     string
	SendTimeout       time.Duration
	SendConcurrency   int

	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitRoutingKey    string
	RabbitConsumerTag   string
	RabbitPublishPrefix string

	OTELServiceName string
	OTLPEndpoint    string
	OTLPInsecure    bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":8080",
		FCMEndpoint:         "https://fcm.googleapis.com",
		OAuthTokenURL:       "https://oauth2.googleapis.com/token",
		SendTimeout:         10 * time.Second,
		SendConcurrency:     8,
		RabbitExchange:      "room-events",
		RabbitQueue:         "room-events.push",
		RabbitRoutingKey:    "room.*",
		RabbitConsumerTag:   "push-consumer",
		RabbitPublishPrefix: "room",
		OTELServiceName:     "roompush",
		OTLPInsecure:        true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.SupabaseServiceKey = os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")

	cfg.FCMServiceAccount = os.Getenv("FCM_SERVICE_ACCOUNT")
	cfg.FCMProjectID = os.Getenv("FCM_PROJECT_ID")
	if v := os.Getenv("FCM_ENDPOINT"); v != "" {
		cfg.FCMEndpoint = v
	}
	if v := os.Getenv("OAUTH_TOKEN_URL"); v != "" {
		cfg.OAuthTokenURL = v
	}
	if v := os.Getenv("SEND_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SendTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("SEND_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SendConcurrency = n
		}
	}

	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")
	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_PREFIX"); v != "" {
		cfg.RabbitPublishPrefix = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	return cfg
}
