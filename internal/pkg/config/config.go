package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"

	DraftBackendBadger = "badger"
	DraftBackendRedis  = "redis"

	NotifyBackendOutbox = "outbox"
	NotifyBackendAsynq  = "asynq"
	NotifyBackendLog    = "log"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Cookie  CookieConfig
	Log     LogConfig
	JWT     JWTConfig
	Store   StoreConfig
	Draft   DraftConfig
	Redis   RedisConfig
	Notify  NotifyConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Session-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN"`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret              string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"24h"`
}

// StoreConfig selects the system of record for test drive requests and vehicles.
type StoreConfig struct {
	Backend         string `envconfig:"STORE_BACKEND" default:"postgres"`
	VehicleSeedFile string `envconfig:"VEHICLE_SEED_FILE"`
}

type DraftConfig struct {
	Backend        string        `envconfig:"DRAFT_BACKEND" default:"badger"`
	BadgerDir      string        `envconfig:"DRAFT_BADGER_DIR"` // empty = in-memory
	TTL            time.Duration `envconfig:"DRAFT_TTL" default:"720h"`
	DebounceWindow time.Duration `envconfig:"DRAFT_DEBOUNCE_WINDOW" default:"2s"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type NotifyConfig struct {
	Backend string `envconfig:"NOTIFY_BACKEND" default:"outbox"`
	Queue   string `envconfig:"NOTIFY_QUEUE" default:"default"`
}

// BookingConfig holds the scheduling rules shared by validation and the completion sweeper.
type BookingConfig struct {
	TimeZone        string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Tokyo"`
	MinLeadTime     time.Duration `envconfig:"BOOKING_MIN_LEAD_TIME" default:"24h"`
	MaxHorizonDays  int           `envconfig:"BOOKING_MAX_HORIZON_DAYS" default:"30"`
	SweepInterval   time.Duration `envconfig:"BOOKING_SWEEP_INTERVAL" default:"5m"`
	OfficeLocation  string        `envconfig:"BOOKING_OFFICE_LOCATION" default:"Dealer office"`
	PublicLocation  string        `envconfig:"BOOKING_PUBLIC_LOCATION" default:"Public meeting point"`
	SellerLocation  string        `envconfig:"BOOKING_SELLER_LOCATION" default:"Seller's location"`
	CalendarProdID  string        `envconfig:"BOOKING_CALENDAR_PRODID" default:"-//testdrive-hub//Test Drive//EN"`
	CalendarUIDHost string        `envconfig:"BOOKING_CALENDAR_UID_HOST" default:"testdrive-hub"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves the business time zone; unknown names fall back to JST.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:              "test-secret-key-for-jwt-signing",
			AccessTokenDuration: "1h",
		},
		Store: StoreConfig{
			Backend: StoreBackendPostgres,
		},
		Draft: DraftConfig{
			Backend:        DraftBackendBadger,
			TTL:            24 * time.Hour,
			DebounceWindow: 50 * time.Millisecond,
		},
		Notify: NotifyConfig{
			Backend: NotifyBackendOutbox,
			Queue:   "default",
		},
		Booking: BookingConfig{
			TimeZone:        "Asia/Tokyo",
			MinLeadTime:     24 * time.Hour,
			MaxHorizonDays:  30,
			SweepInterval:   time.Hour,
			OfficeLocation:  "Dealer office",
			PublicLocation:  "Public meeting point",
			SellerLocation:  "Seller's location",
			CalendarProdID:  "-//testdrive-hub//Test Drive//EN",
			CalendarUIDHost: "testdrive-hub",
		},
	}
}
