package appconfig

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Masked returns a copy of cfg with every credential replaced by a placeholder.
func (c Config) Masked() Config {
	out := c
	out.EnabledSets = append([]string(nil), c.EnabledSets...)
	out.Token = mask(c.Token)
	out.Providers.FlightsAPIKey = mask(c.Providers.FlightsAPIKey)
	out.Providers.RapidAPIKey = mask(c.Providers.RapidAPIKey)
	out.Providers.GoogleMapsAPIKey = mask(c.Providers.GoogleMapsAPIKey)
	return out
}

func mask(secret string) string {
	secret = strings.TrimSpace(secret)
	switch {
	case secret == "":
		return ""
	case len(secret) <= 4:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}

func showSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return secret
}

// ShowConfig prints the current configuration summary with secrets masked.
func ShowConfig(out io.Writer, cfg Config) {
	if cfg.ConfigPath == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults and environment).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigPath)
	}

	m := cfg.Masked()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Transport:       %s\n", m.Transport)
	fmt.Fprintf(out, "  HTTP Address:    %s\n", m.Addr())
	fmt.Fprintf(out, "  Bearer Token:    %s\n", showSecret(m.Token))
	fmt.Fprintf(out, "  Debug:           %v\n", m.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", m.LogFilePath())
	fmt.Fprintf(out, "  Request Timeout: %s\n", m.RequestTimeout())
	fmt.Fprintf(out, "  Max In Flight:   %d\n", m.InFlightLimit())
	fmt.Fprintf(out, "  Toolsets:        %s\n", strings.Join(m.Toolsets(), ", "))
	fmt.Fprintf(out, "  User Agent:      %s\n", m.AgentString())

	p := m.Providers
	fmt.Fprintln(out, "\nProviders:")
	fmt.Fprintf(out, "  Weather (NWS):   %s\n", p.WeatherURL)
	fmt.Fprintf(out, "  Nominatim:       %s\n", p.NominatimURL)
	fmt.Fprintf(out, "  Open-Meteo:      %s\n", p.OpenMeteoURL)
	fmt.Fprintf(out, "  Flights:         %s (key %s)\n", p.FlightsURL, showSecret(p.FlightsAPIKey))
	fmt.Fprintf(out, "  Booking host:    %s\n", p.BookingHost)
	fmt.Fprintf(out, "  IRCTC host:      %s\n", p.IRCTCHost)
	fmt.Fprintf(out, "  RapidAPI key:    %s\n", showSecret(p.RapidAPIKey))
	fmt.Fprintf(out, "  Google Maps:     %s (key %s)\n", p.GoogleMapsURL, showSecret(p.GoogleMapsAPIKey))
}

// ShowConfigYAML writes the masked configuration as YAML.
func ShowConfigYAML(out io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Masked()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
