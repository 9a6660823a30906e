// Package config provide chipstack configuration.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config represent command-line and server configuration.
type Config struct {
	// Port of http server started by serve command.
	Port int64

	// DbURL is mongo url used to store simulation data. Empty value
	// disables persistence.
	DbURL string

	// OutputDir is directory where exported files are written.
	OutputDir string

	LoggingLevel string

	// Workers limits number of simulations built at the same time.
	Workers int

	SkipErrors bool
}

// Default returns configuration used when nothing else is specified.
func Default() Config {
	return Config{
		Port:         3002,
		OutputDir:    ".",
		LoggingLevel: "info",
		Workers:      4,
	}
}

// ReadEnv overrides fields of conf with CHIPSTACK_* environment variables.
func ReadEnv(conf *Config) {
	if dbURL := os.Getenv("CHIPSTACK_DB_URL"); dbURL != "" {
		conf.DbURL = dbURL
	}

	if port := os.Getenv("CHIPSTACK_PORT"); port != "" {
		portNumber, numberErr := strconv.ParseInt(port, 10, 64)
		if numberErr != nil {
			log.Errorf("Port is not a number. %s", numberErr.Error())
		} else {
			conf.Port = portNumber
		}
	}

	if level := os.Getenv("CHIPSTACK_LOG_LEVEL"); level != "" {
		conf.LoggingLevel = level
	}
	conf.LoggingLevel = strings.ToLower(conf.LoggingLevel)
}

// ApplyLoggingLevel sets level of all named loggers.
func (c Config) ApplyLoggingLevel() error {
	level, err := logrus.ParseLevel(c.LoggingLevel)
	if err != nil {
		return err
	}
	SetLoggingLevel(level)
	return nil
}

var log = NamedLogger("config")

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug"}
var availableLoggingLevelsString = strings.Join(availableLoggingLevels, ", ")

func validateLoggingLevel(loggingLevel string) bool {
	for _, l := range availableLoggingLevels {
		if l == loggingLevel {
			return true
		}
	}
	return false
}
