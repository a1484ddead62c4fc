package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type WatchConfig struct {
	InputDir   string `yaml:"inputDir" validate:"required|unixPath"`
	ArchiveDir string `yaml:"archiveDir" validate:"required|unixPath"`
	ErrorDir   string `yaml:"errorDir" validate:"required|unixPath"`
}

type ArchiveConfig struct {
	Compress bool `yaml:"compress"`
}

type WindowConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

type ValidationConfig struct {
	RequireCallsign bool     `yaml:"requireCallsign"`
	RequireName     bool     `yaml:"requireName"`
	RequireLocation bool     `yaml:"requireLocation"`
	RequireStatus   bool     `yaml:"requireStatus"`
	ValidStatuses   []string `yaml:"validStatuses"`
}

type OutputConfig struct {
	Dir                    string `yaml:"dir" validate:"required|unixPath"`
	GenerateText           bool   `yaml:"generateText"`
	GenerateHTML           bool   `yaml:"generateHTML"`
	GenerateCSV            bool   `yaml:"generateCSV"`
	HTMLAutoRefreshSeconds int    `yaml:"htmlAutoRefreshSeconds"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Watch       WatchConfig      `yaml:"watch"`
	Archive     ArchiveConfig    `yaml:"archive"`
	TimeWindows []WindowConfig   `yaml:"timeWindows"`
	Validation  ValidationConfig `yaml:"validation"`
	Output      OutputConfig     `yaml:"output"`
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
