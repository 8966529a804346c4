package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type TopUpConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	TopUpDB      `yaml:"topup_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	RupantorPay  `yaml:"rupantorpay"`
	Payment      `yaml:"payment"`
	Reconcile    `yaml:"reconcile"`
}

type HTTPServer struct {
	Host        string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port        string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout time.Duration `yaml:"read_timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type TopUpDB struct {
	Dsn            string `yaml:"dsn" env:"TOPUP_DB_DSN" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"TOPUP_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"topup-events"`
	// GroupID is a prefix; each instance appends its hostname and a random suffix.
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"topup-notifier"`
}

type RupantorPay struct {
	CheckoutURL   string        `yaml:"checkout_url" env:"RUPANTORPAY_CHECKOUT_URL" env-default:"https://payment.rupantorpay.com/api/payment/checkout"`
	VerifyURL     string        `yaml:"verify_url" env:"RUPANTORPAY_VERIFY_URL" env-default:"https://payment.rupantorpay.com/api/payment/verify-payment"`
	Timeout       time.Duration `yaml:"timeout" env:"RUPANTORPAY_TIMEOUT" env-default:"15s"`
	CustomerPhone string        `yaml:"customer_phone" env-default:"01000000000"`
}

type Payment struct {
	MinAmount     string `yaml:"min_amount" env:"PAYMENT_MIN_AMOUNT" env-default:"10"`
	PublicBaseURL string `yaml:"public_base_url" env:"PAYMENT_PUBLIC_BASE_URL"`
}

type Reconcile struct {
	Interval time.Duration `yaml:"interval" env-default:"1m"`
	MinAge   time.Duration `yaml:"min_age" env-default:"10m"`
	MaxAge   time.Duration `yaml:"max_age" env-default:"24h"`
	Batch    int           `yaml:"batch" env-default:"100"`
}

// Load reads the YAML file at path, applying env overrides and defaults.
func Load(path string) (*TopUpConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg TopUpConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate requires an absolute public_base_url outside the local env.
func (cfg *TopUpConfig) validate() error {
	base := cfg.Payment.PublicBaseURL
	if base == "" {
		if cfg.Env != "local" {
			return fmt.Errorf("payment.public_base_url is required when env is %q", cfg.Env)
		}
		return nil
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("payment.public_base_url %q is not an absolute http(s) URL", base)
	}
	return nil
}

func MustLoad() *TopUpConfig {

	// Processing env config variable and file
	configPath := os.Getenv("TOPUP_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TOPUP_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	return cfg
}
