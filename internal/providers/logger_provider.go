package providers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"welfared/internal/structures"
)

type TypeEnum uint8

const (
	TypeApp TypeEnum = iota
	TypeWatcher
	TypePipeline
	TypeOutput
	TypeWeb
)

func (t TypeEnum) String() string {
	switch t {
	case TypeWatcher:
		return "watcher"
	case TypePipeline:
		return "pipeline"
	case TypeOutput:
		return "output"
	case TypeWeb:
		return "web"
	default:
		return "app"
	}
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	log  zerolog.Logger
	file *os.File
}

// NewLogProvider opens the log file under the configured directory and
// builds the zerolog backend. Debug mode mirrors output to a console
// writer on stderr.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(conf.Logger.Dir, "welfared.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	if conf.Debug {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return &LogProvider{
		log:  zerolog.New(out).With().Timestamp().Logger().Level(level),
		file: file,
	}, nil
}

func (l *LogProvider) logf(level zerolog.Level, t TypeEnum, format string, args ...interface{}) {
	l.log.WithLevel(level).Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.logf(zerolog.DebugLevel, t, format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.logf(zerolog.InfoLevel, t, format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.logf(zerolog.WarnLevel, t, format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.logf(zerolog.ErrorLevel, t, format, args...)
}

// Fatalf logs at fatal level without exiting; shutdown stays the
// caller's decision.
func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.logf(zerolog.FatalLevel, t, format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}
