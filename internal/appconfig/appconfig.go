// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting the travvy server configuration.
package appconfig

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the single-file location used by older deployments.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout bounds every outbound provider request.
	defaultRequestTimeout = 30 * time.Second
	// maxRequestTimeout caps user-supplied timeouts.
	maxRequestTimeout = 300 * time.Second
	// defaultMaxInFlight bounds concurrently handled stdio requests.
	defaultMaxInFlight = 8
	defaultPort        = 8080
	defaultUserAgent   = "travvy-mcp/1.0"
)

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Toolset names. Each one corresponds to a group of tools that can be served alone.
const (
	ToolsetWeather       = "weather"
	ToolsetFlights       = "flights"
	ToolsetAccommodation = "accommodation"
	ToolsetTrains        = "trains"
	ToolsetMaps          = "maps"
)

// KnownToolsets lists every toolset in registration order.
var KnownToolsets = []string{ToolsetWeather, ToolsetFlights, ToolsetAccommodation, ToolsetTrains, ToolsetMaps}

// Config is the read-only process configuration. It is built once at startup
// and passed down to the server and tool handlers.
type Config struct {
	Transport      string    `mapstructure:"transport" yaml:"transport"`
	Host           string    `mapstructure:"host" yaml:"host"`
	Port           int       `mapstructure:"port" yaml:"port"`
	Token          string    `mapstructure:"token" yaml:"token,omitempty"`
	Debug          bool      `mapstructure:"debug" yaml:"debug"`
	LogFile        string    `mapstructure:"logFile" yaml:"logFile,omitempty"`
	TimeoutSeconds int       `mapstructure:"timeout" yaml:"timeout"`
	MaxInFlight    int       `mapstructure:"maxInFlight" yaml:"maxInFlight"`
	EnabledSets    []string  `mapstructure:"toolsets" yaml:"toolsets,omitempty"`
	UserAgent      string    `mapstructure:"userAgent" yaml:"userAgent"`
	Providers      Providers `mapstructure:"providers" yaml:"providers"`
	ConfigPath     string    `mapstructure:"-" yaml:"-"`
}

// Providers holds the endpoints and credentials of the external travel APIs.
type Providers struct {
	WeatherURL       string `mapstructure:"weatherURL" yaml:"weatherURL"`
	NominatimURL     string `mapstructure:"nominatimURL" yaml:"nominatimURL"`
	OpenMeteoURL     string `mapstructure:"openMeteoURL" yaml:"openMeteoURL"`
	FlightsURL       string `mapstructure:"flightsURL" yaml:"flightsURL"`
	FlightsAPIKey    string `mapstructure:"flightsAPIKey" yaml:"flightsAPIKey,omitempty"`
	BookingHost      string `mapstructure:"bookingHost" yaml:"bookingHost"`
	BookingURL       string `mapstructure:"bookingURL" yaml:"bookingURL,omitempty"`
	IRCTCHost        string `mapstructure:"irctcHost" yaml:"irctcHost"`
	IRCTCURL         string `mapstructure:"irctcURL" yaml:"irctcURL,omitempty"`
	RapidAPIKey      string `mapstructure:"rapidAPIKey" yaml:"rapidAPIKey,omitempty"`
	GoogleMapsURL    string `mapstructure:"googleMapsURL" yaml:"googleMapsURL"`
	GoogleMapsAPIKey string `mapstructure:"googleMapsAPIKey" yaml:"googleMapsAPIKey,omitempty"`
}

// envBindings maps config keys to the environment variables the deployments use.
var envBindings = map[string][]string{
	"host":                       {"TRAVVY_HOST", "HOST"},
	"port":                       {"TRAVVY_PORT", "PORT"},
	"token":                      {"TRAVVY_TOKEN", "MCP_TOKEN"},
	"transport":                  {"TRAVVY_TRANSPORT"},
	"logFile":                    {"TRAVVY_LOG_FILE"},
	"timeout":                    {"TRAVVY_TIMEOUT"},
	"toolsets":                   {"TRAVVY_TOOLSETS"},
	"userAgent":                  {"TRAVVY_USER_AGENT"},
	"providers.flightsURL":       {"FLIGHTS_API_URL"},
	"providers.flightsAPIKey":    {"FLIGHTS_API_KEY"},
	"providers.bookingHost":      {"RAPIDAPI_HOST"},
	"providers.rapidAPIKey":      {"RAPIDAPI_KEY"},
	"providers.googleMapsAPIKey": {"GOOGLE_MAPS_API_KEY"},
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", defaultPort)
	v.SetDefault("debug", false)
	v.SetDefault("timeout", int(defaultRequestTimeout.Seconds()))
	v.SetDefault("maxInFlight", defaultMaxInFlight)
	v.SetDefault("userAgent", defaultUserAgent)
	v.SetDefault("providers.weatherURL", "https://api.weather.gov")
	v.SetDefault("providers.nominatimURL", "https://nominatim.openstreetmap.org")
	v.SetDefault("providers.openMeteoURL", "https://api.open-meteo.com")
	v.SetDefault("providers.flightsURL", "http://localhost:8000")
	v.SetDefault("providers.bookingHost", "booking-com15.p.rapidapi.com")
	v.SetDefault("providers.irctcHost", "irctc1.p.rapidapi.com")
	v.SetDefault("providers.googleMapsURL", "https://maps.googleapis.com")
}

// BindEnv attaches the environment variables in envBindings to their keys.
func BindEnv(v *viper.Viper) error {
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// FromViper materializes and validates the merged viper state.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path, falling back to the legacy path when
// the default one is absent. Environment variables override file values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	v := viper.New()
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return Config{}, err
	}

	err := readFile(v, path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath {
		if legacyErr := readFile(v, legacyConfigPath); legacyErr == nil {
			return FromViper(v)
		} else if !errors.Is(legacyErr, os.ErrNotExist) {
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
	}
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return FromViper(v)
}

// ReadOptional reads the config file at path into v, trying the legacy location
// when path is the default. A missing file is not an error.
func ReadOptional(v *viper.Viper, path string) error {
	if path == "" {
		path = DefaultConfigPath
	}
	candidates := []string{path}
	if path == DefaultConfigPath {
		candidates = append(candidates, legacyConfigPath)
	}
	for _, p := range candidates {
		err := readFile(v, p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not read config file %q: %w", p, err)
		}
		return nil
	}
	return nil
}

func readFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	return v.ReadInConfig()
}

func (c *Config) normalize() {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	var sets []string
	for _, s := range c.EnabledSets {
		for _, part := range strings.Split(s, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				sets = append(sets, part)
			}
		}
	}
	c.EnabledSets = sets
}

// Validate rejects unknown transports and toolsets.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid configuration: unknown transport %q (want %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}
	for _, s := range c.EnabledSets {
		if !isKnownToolset(s) {
			return fmt.Errorf("invalid configuration: unknown toolset %q (known: %s)", s, strings.Join(KnownToolsets, ", "))
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid configuration: port %d out of range", c.Port)
	}
	return nil
}

func isKnownToolset(name string) bool {
	for _, k := range KnownToolsets {
		if k == name {
			return true
		}
	}
	return false
}

// RequestTimeout returns the per-request provider timeout, clamped to a sane range.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	d := time.Duration(c.TimeoutSeconds) * time.Second
	if d > maxRequestTimeout {
		return maxRequestTimeout
	}
	return d
}

// InFlightLimit returns how many stdio requests may be handled at once.
func (c Config) InFlightLimit() int {
	if c.MaxInFlight <= 0 {
		return defaultMaxInFlight
	}
	return c.MaxInFlight
}

// Toolsets returns the enabled toolsets, or all of them when none were selected.
func (c Config) Toolsets() []string {
	if len(c.EnabledSets) == 0 {
		return append([]string(nil), KnownToolsets...)
	}
	seen := map[string]bool{}
	var out []string
	for _, k := range KnownToolsets {
		for _, s := range c.EnabledSets {
			if s == k && !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// LogFilePath returns the log file path; empty means stderr only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// AgentString returns the User-Agent sent to providers that require one.
func (c Config) AgentString() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}
