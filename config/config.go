package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BETRIEBSANWEISUNG_"

// Config holds the application configuration.
type Config struct {
	App     AppConfig     `toml:"app"`
	Server  ServerConfig  `toml:"server"`
	PDF     PDFConfig     `toml:"pdf"`
	History HistoryConfig `toml:"history"`
}

// AppConfig holds document-level settings.
type AppConfig struct {
	Name             string `toml:"name"`
	DefaultAuthor    string `toml:"default_author"`
	FallbackCategory string `toml:"fallback_category"`
	FilenameTemplate string `toml:"filename_template"`
	LogLevel         string `toml:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      string `toml:"port"`
	Transport string `toml:"transport"`
	BasePath  string `toml:"base_path"`
	// MaxBodyKB caps POST bodies on the API routes.
	MaxBodyKB int `toml:"max_body_kb"`
}

// PDFConfig selects and tunes the PDF engine.
type PDFConfig struct {
	Engine          string   `toml:"engine"`
	Compress        bool     `toml:"compress"`
	WKHTMLTOPDFPath string   `toml:"wkhtmltopdf_path"`
	ChromiumPath    string   `toml:"chromium_path"`
	ChromiumArgs    []string `toml:"chromium_args"`
	Headless        bool     `toml:"headless"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
	Validate        bool     `toml:"validate"`
}

// HistoryConfig selects the generation history store.
type HistoryConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	Limit  int    `toml:"limit"`
}

// Engines.
const (
	EngineFPDF        = "fpdf"
	EngineWKHTMLTOPDF = "wkhtmltopdf"
	EngineChromium    = "chromium"
)

// Transports.
const (
	TransportFiber   = "fiber"
	TransportNetHTTP = "nethttp"
)

// History drivers.
const (
	HistoryMemory = "memory"
	HistorySQLite = "sqlite"
)

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Name:     "Betriebsanweisung Generator",
			LogLevel: "info",
		},
		Server: ServerConfig{
			Host:      "localhost",
			Port:      "5000",
			Transport: TransportFiber,
			MaxBodyKB: 1024,
		},
		PDF: PDFConfig{
			Engine:         EngineFPDF,
			Compress:       true,
			Headless:       true,
			TimeoutSeconds: 30,
		},
		History: HistoryConfig{
			Driver: HistoryMemory,
			DSN:    "file:betriebsanweisung.db?cache=shared",
			Limit:  50,
		},
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Timeout returns the PDF engine timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.PDF.TimeoutSeconds) * time.Second
}

// Load builds a Config from defaults, the optional TOML file at path, an
// optional .env file and BETRIEBSANWEISUNG_* environment variables, in that
// order.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides cfg from environment variables read through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}

	str("APP_NAME", &cfg.App.Name)
	str("DEFAULT_AUTHOR", &cfg.App.DefaultAuthor)
	str("FALLBACK_CATEGORY", &cfg.App.FallbackCategory)
	str("FILENAME_TEMPLATE", &cfg.App.FilenameTemplate)
	str("LOG_LEVEL", &cfg.App.LogLevel)
	str("HOST", &cfg.Server.Host)
	str("PORT", &cfg.Server.Port)
	str("TRANSPORT", &cfg.Server.Transport)
	str("BASE_PATH", &cfg.Server.BasePath)
	str("PDF_ENGINE", &cfg.PDF.Engine)
	str("WKHTMLTOPDF_PATH", &cfg.PDF.WKHTMLTOPDFPath)
	str("CHROMIUM_PATH", &cfg.PDF.ChromiumPath)
	str("HISTORY_DRIVER", &cfg.History.Driver)
	str("HISTORY_DSN", &cfg.History.DSN)
	if v, ok := lookup(EnvPrefix + "CHROMIUM_ARGS"); ok && v != "" {
		cfg.PDF.ChromiumArgs = splitCSV(v)
	}

	for _, apply := range []func() error{
		func() error { return boolean("PDF_COMPRESS", &cfg.PDF.Compress) },
		func() error { return boolean("PDF_HEADLESS", &cfg.PDF.Headless) },
		func() error { return boolean("PDF_VALIDATE", &cfg.PDF.Validate) },
		func() error { return integer("PDF_TIMEOUT", &cfg.PDF.TimeoutSeconds) },
		func() error { return integer("HISTORY_LIMIT", &cfg.History.Limit) },
		func() error { return integer("MAX_BODY_KB", &cfg.Server.MaxBodyKB) },
	} {
		if err := apply(); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects unknown engines, transports and history drivers.
func (c Config) Validate() error {
	switch c.PDF.Engine {
	case EngineFPDF, EngineWKHTMLTOPDF, EngineChromium:
	default:
		return fmt.Errorf("unknown pdf engine %q", c.PDF.Engine)
	}
	switch c.Server.Transport {
	case TransportFiber, TransportNetHTTP:
	default:
		return fmt.Errorf("unknown transport %q", c.Server.Transport)
	}
	switch c.History.Driver {
	case HistoryMemory, HistorySQLite:
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	if c.PDF.TimeoutSeconds <= 0 {
		return fmt.Errorf("pdf timeout must be positive")
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
