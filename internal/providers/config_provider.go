package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"welfared/internal/models"
	"welfared/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "WELFARE_LOG_LEVEL")
	viper.BindEnv("watch.inputDir", "WELFARE_INPUT_DIR")
	viper.BindEnv("output.dir", "WELFARE_OUTPUT_DIR")
	viper.BindEnv("persistence.saveInterval", "WELFARE_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "WELFARE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "WELFARE_CACHE_SIZE")

	viper.SetDefault("validation.requireCallsign", true)
	viper.SetDefault("validation.requireName", true)
	viper.SetDefault("validation.requireLocation", true)
	viper.SetDefault("validation.requireStatus", true)
	viper.SetDefault("validation.validStatuses", []string{
		models.StatusSafe, models.StatusNeedAssistance, models.StatusTraffic,
	})
	viper.SetDefault("output.generateText", true)
	viper.SetDefault("output.generateHTML", true)
	viper.SetDefault("output.generateCSV", true)
	viper.SetDefault("output.htmlAutoRefreshSeconds", 30)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	// Without configured windows the board runs around the clock.
	if len(conf.TimeWindows) == 0 {
		conf.TimeWindows = []structures.WindowConfig{
			{Name: "All Day", Start: "00:00", End: "23:59"},
		}
	}

	// Relative paths resolve against the working directory before
	// validation; the unixPath rule only accepts absolute paths.
	// Empty values stay empty so the required rule still fires.
	for _, p := range []*string{
		&conf.Watch.InputDir, &conf.Watch.ArchiveDir, &conf.Watch.ErrorDir,
		&conf.Output.Dir, &conf.Persistence.FilePath, &conf.Logger.Dir,
	} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", *p, err)
		}
		*p = abs
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WelfareBoardDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
