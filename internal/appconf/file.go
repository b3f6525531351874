package appconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dashboard.covid19.org/internal/logging"
	"dashboard.covid19.org/internal/whodata"
)

// FileConfig is the YAML form of the configuration. Keys mirror the flag
// names; absent keys leave the flag value alone.
type FileConfig struct {
	Port            *int     `yaml:"port"`
	Env             *string  `yaml:"env"`
	AdminKeys       []string `yaml:"admin-keys"`
	RateLimit       *int     `yaml:"rate-limit"`
	CacheSize       *int     `yaml:"cache-size"`
	LogLevel        *string  `yaml:"log-level"`
	CasesURL        *string  `yaml:"cases-url"`
	SummaryURL      *string  `yaml:"summary-url"`
	VaccinationsURL *string  `yaml:"vaccinations-url"`
	FetchTimeout    *string  `yaml:"fetch-timeout"`
	Verbose         *bool    `yaml:"verbose"`
	TrustedProxies  []string `yaml:"trusted-proxies"`
}

// LoadFile reads a YAML configuration file. Unknown keys are an error.
func LoadFile(path string) (fc FileConfig, err error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, err
	}
	defer logging.HandleDeferredError(&err, f.Close, slog.Default(), "close config file")

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return fc, nil
}

// Apply copies the values present in the file into cfg and data, except for
// settings named in explicit, which were given on the command line and win.
func (fc FileConfig) Apply(cfg *Config, data *whodata.Config, explicit map[string]bool) error {
	set := func(name string) bool { return !explicit[name] }

	if fc.Port != nil && set("port") {
		cfg.Port = *fc.Port
	}
	if fc.Env != nil && set("env") {
		cfg.Env = EnvFlagToEnvironment(*fc.Env)
	}
	if fc.AdminKeys != nil && set("admin-keys") {
		cfg.AdminKeys = fc.AdminKeys
	}
	if fc.RateLimit != nil && set("rate-limit") {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.CacheSize != nil && set("cache-size") {
		cfg.CacheSize = *fc.CacheSize
	}
	if fc.LogLevel != nil && set("log-level") {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.CasesURL != nil && set("cases-url") {
		data.CasesURL = *fc.CasesURL
	}
	if fc.SummaryURL != nil && set("summary-url") {
		data.SummaryURL = *fc.SummaryURL
	}
	if fc.VaccinationsURL != nil && set("vaccinations-url") {
		data.VaccinationsURL = *fc.VaccinationsURL
	}
	if fc.FetchTimeout != nil && set("fetch-timeout") {
		d, err := time.ParseDuration(*fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("fetch-timeout: %w", err)
		}
		data.FetchTimeout = d
	}
	if fc.Verbose != nil && set("verbose") {
		data.Verbose = *fc.Verbose
	}
	if fc.TrustedProxies != nil && set("trusted-proxies") {
		proxies, err := ParseTrustedProxies(fc.TrustedProxies)
		if err != nil {
			return err
		}
		cfg.TrustedProxies = proxies
	}
	return nil
}
