package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "opensourcetogether/internal/util/env"
	"opensourcetogether/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"      required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"          required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH" required:"true"`
	Port            string            `env:"PORT"              env-default:"4005"`
	FrontendURL     string            `env:"FRONTEND_URL"      required:"true"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	// github
	GithubPublicToken  string `env:"GH_TOKEN_OST_PUBLIC"  required:"true"`
	GithubClientID     string `env:"GITHUB_CLIENT_ID"     required:"true"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET" required:"true"`
	GithubCallbackURL  string `env:"GITHUB_CALLBACK_URL"  required:"true"`
	TokenEncryptionKey string `env:"TOKEN_ENCRYPTION_KEY" required:"true"`
	// email, optional
	SmtpHost     string `env:"SMTP_HOST"     required:"false"`
	SmtpPort     int    `env:"SMTP_PORT"     env-default:"587"`
	SmtpUsername string `env:"SMTP_USERNAME" required:"false"`
	SmtpPassword string `env:"SMTP_PASSWORD" required:"false"`
	SmtpFrom     string `env:"SMTP_FROM"     required:"false"`
	// kafka, optional
	KafkaBrokersRaw         string `env:"KAFKA_BROKERS"             required:"false"`
	KafkaNotificationsTopic string `env:"KAFKA_NOTIFICATIONS_TOPIC" env-default:"ost.notifications"`
}

func (e EnvVariables) IsProduction() bool {
	return e.EnvMode == env_utils.EnvModeProduction
}

func (e EnvVariables) IsSmtpConfigured() bool {
	return e.SmtpHost != "" && e.SmtpFrom != ""
}

func (e EnvVariables) KafkaBrokers() []string {
	if strings.TrimSpace(e.KafkaBrokersRaw) == "" {
		return nil
	}

	var brokers []string
	for _, broker := range strings.Split(e.KafkaBrokersRaw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}

	return brokers
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		log.Info("Trying to load .env", "path", path)
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Error("Error loading .env file: could not find .env in any location")
		os.Exit(1)
	}

	if os.Getenv("BACKEND_ROOT_PATH") == "" {
		_ = os.Setenv("BACKEND_ROOT_PATH", backendRoot)
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	key, err := hex.DecodeString(env.TokenEncryptionKey)
	if err != nil || len(key) != 32 {
		log.Error("TOKEN_ENCRYPTION_KEY must be 64 hex characters")
		os.Exit(1)
	}

	if !env.IsSmtpConfigured() {
		log.Warn("SMTP is not configured, e-mails will be skipped")
	}

	if len(env.KafkaBrokers()) == 0 {
		log.Info("KAFKA_BROKERS is empty, notification events will not be streamed")
	}

	log.Info("Environment variables loaded successfully!")
}
