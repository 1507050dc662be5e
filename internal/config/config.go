package config

import (
	"errors"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataPath        string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CacheSize       int

	// Report parameters for the parameterized queries.
	ReportCountry            string
	ReportElevationThreshold float64
	ReportDecade             int

	// Report publishing configuration.
	KafkaBrokers         []string
	KafkaReportTopic     string
	ReportPublishEnabled bool
	ReportSchedule       string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	threshold, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("REPORT_ELEVATION_THRESHOLD", "3000"), 64)
	if err != nil || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, errors.New("invalid REPORT_ELEVATION_THRESHOLD")
	}

	decade, err := strconv.Atoi(sharedcfg.EnvOrDefault("REPORT_DECADE", "1980"))
	if err != nil || decade%10 != 0 {
		return nil, errors.New("invalid REPORT_DECADE: must be a year divisible by 10")
	}

	publishEnabled := false
	if v := os.Getenv("REPORT_PUBLISH_ENABLED"); v != "" {
		publishEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid REPORT_PUBLISH_ENABLED")
		}
	}

	cfg := &Config{
		DataPath:        os.Getenv("DATA_PATH"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CacheSize:       cacheSize,

		ReportCountry:            sharedcfg.EnvOrDefault("REPORT_COUNTRY", "Indonesia"),
		ReportElevationThreshold: threshold,
		ReportDecade:             decade,

		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic:     sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "volcano-reports"),
		ReportPublishEnabled: publishEnabled,
		ReportSchedule:       sharedcfg.EnvOrDefault("REPORT_SCHEDULE", "@every 1h"),
	}

	if cfg.ReportPublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("REPORT_PUBLISH_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaReportTopic == "" {
			return nil, errors.New("REPORT_PUBLISH_ENABLED is true but KAFKA_REPORT_TOPIC is empty")
		}
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}
