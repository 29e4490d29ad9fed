package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Connection describes one whitelisted SQL Server data source. Each
// connection is configured through a numbered env block (DB1_*, DB2_*, ...)
// so sites can be added without code changes. The TAG_* overrides absorb
// per-site drift in sensor tag naming (e.g. TAG_LDD vs PRESION_LE).
type Connection struct {
	Name     string `envconfig:"NAME"`
	Host     string `envconfig:"HOST" required:"true"`
	Port     int    `envconfig:"PORT" default:"1433"`
	Database string `envconfig:"DATABASE" required:"true"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`

	TagPresionTP       string `envconfig:"TAG_PRESION_TP" default:"PRESION_TP"`
	TagPresionTR       string `envconfig:"TAG_PRESION_TR" default:"PRESION_TR"`
	TagLDD             string `envconfig:"TAG_LDD" default:"PRESION_LE"`
	TagTemperaturaPozo string `envconfig:"TAG_TEMPERATURA_POZO" default:"TEMP_LE"`
	TagPresionSuccion  string `envconfig:"TAG_PRESION_SUCCION" default:"PRESION_SUCCION"`
	TagPresionDescarga string `envconfig:"TAG_PRESION_DESCARGA" default:"PRESION_ESTATICA_DESCARGA"`
	TagVelocidad       string `envconfig:"TAG_VELOCIDAD" default:"VELOCIDAD"`
	TagTempDescarga    string `envconfig:"TAG_TEMP_DESCARGA" default:"TEMPERATURA_DESCARGA"`
	TagTempSuccion     string `envconfig:"TAG_TEMP_SUCCION" default:"TEMPERATURA_SUCCION"`
	TagQiny            string `envconfig:"TAG_QINY" default:"FLUJO_CORREGIDO_DESCARGA"`
}

// DSN builds the sqlserver:// connection string for this data source.
func (c Connection) DSN() string {
	u := url.URL{
		Scheme: "sqlserver",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
	}
	if c.Username != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	q := url.Values{}
	q.Set("database", c.Database)
	u.RawQuery = q.Encode()
	return u.String()
}

// Config holds environment-driven settings for the report API.
type Config struct {
	Port              int
	DefaultConnection string
	Connections       []Connection
}

// Load reads configuration from environment variables (optionally .env).
// Connection blocks are scanned in order starting at DB1 and stop at the
// first index without a HOST; the allow-list order is the block order.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{Port: 8080}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	}

	seen := map[string]bool{}
	for i := 1; ; i++ {
		prefix := fmt.Sprintf("DB%d", i)
		if os.Getenv(prefix+"_HOST") == "" {
			break
		}

		var conn Connection
		if err := envconfig.Process(prefix, &conn); err != nil {
			return cfg, fmt.Errorf("connection %s: %w", prefix, err)
		}
		if conn.Name == "" {
			return cfg, fmt.Errorf("%s_NAME is required", prefix)
		}
		if seen[conn.Name] {
			return cfg, fmt.Errorf("duplicate connection name %q", conn.Name)
		}
		seen[conn.Name] = true
		cfg.Connections = append(cfg.Connections, conn)
	}

	if len(cfg.Connections) == 0 {
		return cfg, errors.New("at least one DBn_* connection block is required")
	}

	cfg.DefaultConnection = os.Getenv("DB_DEFAULT_CONNECTION")
	if cfg.DefaultConnection == "" {
		cfg.DefaultConnection = cfg.Connections[0].Name
	} else if !seen[cfg.DefaultConnection] {
		return cfg, fmt.Errorf("DB_DEFAULT_CONNECTION %q is not a configured connection", cfg.DefaultConnection)
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
