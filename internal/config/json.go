package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/roomboard/internal/flagx"
	"github.com/dmitrijs2005/roomboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	CacheBackend    string         `json:"cache_backend"`
	CachePath       string         `json:"cache_path"`
	CacheTTL        timex.Duration `json:"cache_ttl"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	SecretKey       string         `json:"secret_key"`
	SessionToken    string         `json:"session_token"`
	S3              struct {
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		Bucket    string `json:"bucket"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"s3"`
	MetricsAddr string `json:"metrics_addr"`
	LogLevel    string `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.CacheBackend, jc.CacheBackend)
	setString(&cfg.CachePath, jc.CachePath)
	if jc.CacheTTL.Duration > 0 {
		cfg.CacheTTL = jc.CacheTTL.Duration
	}
	if jc.RefreshInterval.Duration > 0 {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.SessionToken, jc.SessionToken)
	setString(&cfg.S3.Region, jc.S3.Region)
	setString(&cfg.S3.Endpoint, jc.S3.Endpoint)
	setString(&cfg.S3.Bucket, jc.S3.Bucket)
	setString(&cfg.S3.AccessKey, jc.S3.AccessKey)
	setString(&cfg.S3.SecretKey, jc.S3.SecretKey)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
