package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	MigrateOnStart  bool          `envconfig:"MIGRATE_ON_START" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"1h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"payportal:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
	// Transfer creation has its own, tighter window.
	TransferMaxRequests int           `envconfig:"TRANSFER_MAX_REQUESTS" default:"5"`
	TransferWindow      time.Duration `envconfig:"TRANSFER_WINDOW" default:"1m"`
}

// BruteForce configures the login lockout guard.
type BruteForce struct {
	FreeRetries int           `envconfig:"FREE_RETRIES" default:"2"`
	MinWait     time.Duration `envconfig:"MIN_WAIT" default:"1m"`
	MaxWait     time.Duration `envconfig:"MAX_WAIT" default:"2m"`
	Lifetime    time.Duration `envconfig:"LIFETIME" default:"24h"`
}

type ExchangeRateApi struct {
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:""`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type ExchangeRateCache struct {
	TTL    time.Duration `envconfig:"TTL" default:"15m"`
	Prefix string        `envconfig:"CACHE_PREFIX" default:"exr:rate:"`
}

type EventBus struct {
	Driver  string `envconfig:"DRIVER" default:"memory"`
	Brokers string `envconfig:"BROKERS" default:"localhost:9092"`
	Topic   string `envconfig:"TOPIC" default:"payportal.transactions"`
}

type Audit struct {
	WriteTimeout  time.Duration `envconfig:"WRITE_TIMEOUT" default:"5s"`
	Retention     time.Duration `envconfig:"RETENTION" default:"720h"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[payportal]"`
}

type Server struct {
	Scheme      string `envconfig:"SCHEME" default:"http"`
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        int    `envconfig:"PORT" default:"3000"`
	TLSCertFile string `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile  string `envconfig:"TLS_KEY_FILE"`
}

// TLSEnabled reports whether both certificate and key are configured.
func (s *Server) TLSEnabled() bool {
	return s.TLSCertFile != "" && s.TLSKeyFile != ""
}

type App struct {
	Env               string             `envconfig:"APP_ENV" default:"development"`
	Server            *Server            `envconfig:"SERVER"`
	Log               *Log               `envconfig:"LOG"`
	DB                *DB                `envconfig:"DATABASE"`
	Auth              *Auth              `envconfig:"AUTH"`
	Redis             *Redis             `envconfig:"REDIS"`
	RateLimit         *RateLimit         `envconfig:"RATE_LIMIT"`
	BruteForce        *BruteForce        `envconfig:"BRUTE_FORCE"`
	ExchangeRateCache *ExchangeRateCache `envconfig:"EXCHANGE_RATE_CACHE"`
	ExchangeRateApi   *ExchangeRateApi   `envconfig:"EXCHANGE_RATE_PROVIDER_EXCHANGERATE"`
	EventBus          *EventBus          `envconfig:"EVENT_BUS"`
	Audit             *Audit             `envconfig:"AUDIT"`
}
