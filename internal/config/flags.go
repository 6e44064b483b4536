package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/roomboard/internal/flagx"
)

var knownFlags = []string{
	"-d", "-cache-backend", "-cache-path", "-ttl", "-refresh", "-timeout",
	"-k", "-token", "-s3-region", "-s3-endpoint", "-s3-bucket",
	"-s3-access-key", "-s3-secret-key", "-metrics", "-log-level",
}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are considered, so -c/-config and unknown flags pass through.
//
//	-d string              Postgres DSN
//	-cache-backend string  sqlite or badger
//	-cache-path string     cache file (sqlite) or directory (badger)
//	-ttl duration          cache TTL
//	-refresh duration      auto-refresh interval
//	-timeout duration      per-request timeout
//	-k string              session token secret
//	-token string          session token to sign in with
//	-metrics string        address for /metrics, empty disables
//	-log-level string      debug, info, warn or error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("roomboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Postgres DSN")
	fs.StringVar(&cfg.CacheBackend, "cache-backend", cfg.CacheBackend, "local cache backend (sqlite|badger)")
	fs.StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "local cache location")
	fs.DurationVar(&cfg.CacheTTL, "ttl", cfg.CacheTTL, "cache TTL")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "auto-refresh interval")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "session token secret")
	fs.StringVar(&cfg.SessionToken, "token", cfg.SessionToken, "session token")
	fs.StringVar(&cfg.S3.Region, "s3-region", cfg.S3.Region, "S3 region")
	fs.StringVar(&cfg.S3.Endpoint, "s3-endpoint", cfg.S3.Endpoint, "S3 endpoint")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3.AccessKey, "s3-access-key", cfg.S3.AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3.SecretKey, "s3-secret-key", cfg.S3.SecretKey, "S3 secret key")
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
