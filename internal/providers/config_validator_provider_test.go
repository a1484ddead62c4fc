package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"welfared/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Watch: structures.WatchConfig{
			InputDir:   "/tmp/welfare/incoming",
			ArchiveDir: "/tmp/welfare/archive",
			ErrorDir:   "/tmp/welfare/errors",
		},
		TimeWindows: []structures.WindowConfig{
			{Name: "Evening Net", Start: "19:00", End: "21:00"},
		},
		Output: structures.OutputConfig{
			Dir: "/tmp/welfare/reports",
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/welfare/snapshot.json",
			SaveInterval: 60,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

// unixPath only accepts absolute paths; relative paths from the config
// file are resolved in NewConfigProvider before validation runs.
func TestConfigValidator_RelativePathRejected(t *testing.T) {
	c := validConfig()
	c.Watch.InputDir = "./data/incoming"
	v := NewCnfValidator(c)
	err := v.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "InputDir")
}

func TestConfigValidator_EmptyInputDir(t *testing.T) {
	c := validConfig()
	c.Watch.InputDir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_WindowBadClock(t *testing.T) {
	c := validConfig()
	c.TimeWindows[0].Start = "25:00"
	v := NewCnfValidator(c)
	err := v.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Evening Net")
}

func TestConfigValidator_WindowInverted(t *testing.T) {
	c := validConfig()
	c.TimeWindows[0].Start = "21:00"
	c.TimeWindows[0].End = "19:00"
	v := NewCnfValidator(c)
	err := v.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "start 21:00 is after end 19:00")
}

func TestConfigValidator_OverlappingWindowsAllowed(t *testing.T) {
	c := validConfig()
	c.TimeWindows = append(c.TimeWindows, structures.WindowConfig{
		Name: "Late Net", Start: "20:00", End: "22:00",
	})
	v := NewCnfValidator(c)
	assert.NoError(t, v.Validate())
}
