package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	DB           DBConfig           `mapstructure:"db"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Cron         CronConfig         `mapstructure:"cron"`
	Market       MarketConfig       `mapstructure:"market"`
	FundRegistry FundRegistryConfig `mapstructure:"fund_registry"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	News         NewsConfig         `mapstructure:"news"`
	Stream       StreamConfig       `mapstructure:"stream"`
	Holdings     HoldingsConfig     `mapstructure:"holdings"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CronConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	FundRegistrySync  string `mapstructure:"fund_registry_sync"`
	PortfolioSnapshot string `mapstructure:"portfolio_snapshot"`
}

type MarketConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	MaxBatchSize int           `mapstructure:"max_batch_size"`
}

type FundRegistryConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BatchSize int           `mapstructure:"batch_size"`
}

type CatalogConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type NewsConfig struct {
	CacheTTL     time.Duration       `mapstructure:"cache_ttl"`
	PerFeedLimit int                 `mapstructure:"per_feed_limit"`
	FeedTimeout  time.Duration       `mapstructure:"feed_timeout"`
	Feeds        map[string][]string `mapstructure:"feeds"`
}

type StreamConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	MaxSymbols      int           `mapstructure:"max_symbols"`
}

type HoldingsConfig struct {
	// ZeroBasisPolicy controls sell-without-buy positions: "zero" keeps the
	// zero cost baseline, "flag" suppresses P/L for them.
	ZeroBasisPolicy string `mapstructure:"zero_basis_policy"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.fund_registry_sync", "@every 6h")
	v.SetDefault("cron.portfolio_snapshot", "@every 1h")
	v.SetDefault("market.base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("market.timeout", "10s")
	v.SetDefault("market.cache_ttl", "60s")
	v.SetDefault("market.max_batch_size", 50)
	v.SetDefault("fund_registry.url", "https://www.amfiindia.com/spages/NAVAll.txt")
	v.SetDefault("fund_registry.timeout", "30s")
	v.SetDefault("fund_registry.batch_size", 500)
	v.SetDefault("catalog.csv_path", "data/symbols.csv")
	v.SetDefault("news.cache_ttl", "10m")
	v.SetDefault("news.per_feed_limit", 12)
	v.SetDefault("news.feed_timeout", "15s")
	v.SetDefault("news.feeds", map[string][]string{
		"markets": {
			"https://feeds.finance.yahoo.com/rss/2.0/headline?s=%5EGSPC&region=US&lang=en-US",
			"https://www.cnbc.com/id/100003114/device/rss/rss.html",
		},
		"crypto": {
			"https://www.coindesk.com/arc/outboundfeeds/rss/",
		},
		"business": {
			"https://www.cnbc.com/id/10000664/device/rss/rss.html",
		},
	})
	v.SetDefault("stream.refresh_interval", "60s")
	v.SetDefault("stream.max_symbols", 25)
	v.SetDefault("holdings.zero_basis_policy", "zero")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
