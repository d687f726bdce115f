package config

import (
	"time"

	"github.com/MichalMitros/price-monitor/internal/notify"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	// SchedulerEnabled turns off cron cadence for command-only workers.
	SchedulerEnabled bool `env:"SCHEDULER_ENABLED" envDefault:"true"`
	// RunOnStart lists jobs run once right after start, e.g. "scrape_all,product_stats".
	RunOnStart []string `env:"SCHEDULER_RUN_ON_START" envSeparator:","`

	Scraper    Scraper
	Aggregator Aggregator
	Alerts     Alerts
	Browser    Browser
	RabbitMQ   RabbitMQ
	Redis      Redis
	SMTP       notify.SMTPConfig `envPrefix:"SMTP_"`
}

// Scraper holds fetching and scraping configuration.
type Scraper struct {
	Concurrency     int           `env:"SCRAPER_CONCURRENCY" envDefault:"5"`
	HTTPTimeout     time.Duration `env:"SCRAPER_HTTP_TIMEOUT" envDefault:"30s"`
	Retries         uint64        `env:"SCRAPER_RETRIES" envDefault:"3"`
	InitialBackOff  time.Duration `env:"SCRAPER_INITIAL_BACKOFF" envDefault:"4s"`
	MaxBackOff      time.Duration `env:"SCRAPER_MAX_BACKOFF" envDefault:"10s"`
	HostInterval    time.Duration `env:"SCRAPER_HOST_INTERVAL" envDefault:"1s"`
	HostBurst       int           `env:"SCRAPER_HOST_BURST" envDefault:"2"`
	UserAgent       string        `env:"SCRAPER_USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	BrowserDisabled bool          `env:"SCRAPER_BROWSER_DISABLED" envDefault:"false"`
}

// Aggregator holds statistics configuration.
type Aggregator struct {
	Retention time.Duration `env:"AGGREGATOR_RETENTION" envDefault:"8760h"`
}

// Alerts holds alert evaluation configuration.
type Alerts struct {
	Lookback int `env:"ALERTS_LOOKBACK" envDefault:"10"`
}

// Browser holds headless browser configuration.
type Browser struct {
	Bin         string        `env:"BROWSER_BIN"`
	Headless    bool          `env:"BROWSER_HEADLESS" envDefault:"true"`
	IdleWindow  time.Duration `env:"BROWSER_IDLE_WINDOW" envDefault:"500ms"`
	SettleDelay time.Duration `env:"BROWSER_SETTLE_DELAY" envDefault:"2s"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL,required"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"price-monitor-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"price-monitor.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"price-monitor.command"`
	Prefetch   int    `env:"RABBITMQ_PREFETCH" envDefault:"1"`
}

// Redis holds scheduler lock configuration. Empty address disables locking.
type Redis struct {
	Addr    string        `env:"REDIS_ADDR"`
	LockTTL time.Duration `env:"REDIS_LOCK_TTL" envDefault:"30m"`
}
