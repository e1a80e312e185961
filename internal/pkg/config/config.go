package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   provider credentials, etc.), security settings
// - default: Values common across all environments (timeouts, currency, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Provider ProviderConfig
	Vendor   VendorConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// External base URL of this console, used to build the payment return URL.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Riyadh"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// How long a pending rental selection survives while the customer is on
	// the hosted payment page.
	IntentTTL time.Duration `envconfig:"RENTAL_INTENT_TTL" default:"30m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Riyadh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type JWTConfig struct {
	Secret          string        `envconfig:"JWT_SECRET" required:"true"`
	AccessDuration  time.Duration `envconfig:"JWT_ACCESS_DURATION" default:"15m"`
	RefreshDuration time.Duration `envconfig:"JWT_REFRESH_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// ProviderConfig points at the hosted payment provider's REST API. The
// secret key is used server-side to verify payment status; it is never the
// publishable key embedded in the checkout form.
type ProviderConfig struct {
	BaseURL   string        `envconfig:"PROVIDER_BASE_URL" default:"https://api.moyasar.com/v1"`
	SecretKey string        `envconfig:"PROVIDER_SECRET_KEY" required:"true"`
	Timeout   time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
}

// VendorConfig points at the hardware vendor API that physically releases
// carts and reports device/slot state.
type VendorConfig struct {
	BaseURL    string        `envconfig:"VENDOR_BASE_URL" required:"true"`
	AppKey     string        `envconfig:"VENDOR_APP_KEY" required:"true"`
	Timeout    time.Duration `envconfig:"VENDOR_TIMEOUT" default:"15s"`
	MerchantNo string        `envconfig:"VENDOR_MERCHANT_NO" default:""`
}

// CheckoutConfig is the declarative config handed to the hosted payment
// form on the selection screen.
type CheckoutConfig struct {
	PublishableKey    string   `envconfig:"CHECKOUT_PUBLISHABLE_KEY" required:"true"`
	Currency          string   `envconfig:"CHECKOUT_CURRENCY" default:"SAR"`
	SupportedNetworks []string `envconfig:"CHECKOUT_SUPPORTED_NETWORKS" default:"visa,mastercard,mada"`
	Methods           []string `envconfig:"CHECKOUT_METHODS" default:"creditcard,applepay"`
	ReturnPath        string   `envconfig:"CHECKOUT_RETURN_PATH" default:"/pay/return"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
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
			Port:          "8889", // Test port
			PublicBaseURL: "http://localhost:8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Riyadh",
		},
		Redis: RedisConfig{
			Addr:      "localhost:16379",
			IntentTTL: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Riyadh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		Checkout: CheckoutConfig{
			PublishableKey:    "pk_test_dummy",
			Currency:          "SAR",
			SupportedNetworks: []string{"visa", "mastercard", "mada"},
			Methods:           []string{"creditcard"},
			ReturnPath:        "/pay/return",
		},
		JWT: JWTConfig{
			Secret:          "test-secret-key-for-unit-tests",
			AccessDuration:  15 * time.Minute,
			RefreshDuration: 168 * time.Hour,
		},
		Cookie: CookieConfig{
			Domain:   "",
			Secure:   false,
			SameSite: "Lax",
		},
	}
}
