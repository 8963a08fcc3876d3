package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Generator Generator
	Jobs      Jobs
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Generator holds the connection settings for the external
// question-generation webhook service.
type Generator struct {
	URL                string
	APIKey             string
	CallbackBaseURL    string
	SyncTimeoutSeconds int
	AckTimeoutSeconds  int
	AckMaxRetries      int
}

// Jobs controls the in-memory generation-job registry lifetimes.
type Jobs struct {
	TTLMinutes             int
	GraceMinutes           int
	FailedRetentionMinutes int
	SweepIntervalSeconds   int
	DedupWindowMinutes     int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("GENERATOR_SYNC_TIMEOUT_SECONDS", 100)
	viper.SetDefault("GENERATOR_ACK_TIMEOUT_SECONDS", 12)
	viper.SetDefault("GENERATOR_ACK_MAX_RETRIES", 3)
	viper.SetDefault("JOB_TTL_MINUTES", 10)
	viper.SetDefault("JOB_GRACE_MINUTES", 20)
	viper.SetDefault("JOB_FAILED_RETENTION_MINUTES", 5)
	viper.SetDefault("JOB_SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("QUIZ_DEDUP_WINDOW_MINUTES", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Generator.URL = viper.GetString("GENERATOR_URL")
	config.Generator.APIKey = viper.GetString("GENERATOR_API_KEY")
	config.Generator.CallbackBaseURL = viper.GetString("GENERATOR_CALLBACK_BASE_URL")
	config.Generator.SyncTimeoutSeconds = viper.GetInt("GENERATOR_SYNC_TIMEOUT_SECONDS")
	config.Generator.AckTimeoutSeconds = viper.GetInt("GENERATOR_ACK_TIMEOUT_SECONDS")
	config.Generator.AckMaxRetries = viper.GetInt("GENERATOR_ACK_MAX_RETRIES")

	config.Jobs.TTLMinutes = viper.GetInt("JOB_TTL_MINUTES")
	config.Jobs.GraceMinutes = viper.GetInt("JOB_GRACE_MINUTES")
	config.Jobs.FailedRetentionMinutes = viper.GetInt("JOB_FAILED_RETENTION_MINUTES")
	config.Jobs.SweepIntervalSeconds = viper.GetInt("JOB_SWEEP_INTERVAL_SECONDS")
	config.Jobs.DedupWindowMinutes = viper.GetInt("QUIZ_DEDUP_WINDOW_MINUTES")

	log.Info().Str("port", config.Server.Port).Str("generatorURL", config.Generator.URL).Msg("Config loaded")
	return &config, nil
}
