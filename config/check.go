package config

import (
	"fmt"
)

type checkFunc func(conf *Config) error

// Check validates conf. Port is checked only when checkPortNeeded is set,
// commands that do not listen on it skip that check.
func Check(conf *Config, checkPortNeeded bool) error {
	checkFuncs := []checkFunc{
		checkLoggingLevel,
		checkWorkers,
	}
	if checkPortNeeded {
		checkFuncs = append(checkFuncs, checkPort)
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			return err
		}
	}

	return nil
}

func checkPort(conf *Config) error {
	port := conf.Port
	if port < 1000 || port > 65535 {
		return fmt.Errorf("invalid port number %d", port)
	}
	return nil
}

func checkLoggingLevel(conf *Config) error {
	if !validateLoggingLevel(conf.LoggingLevel) {
		return fmt.Errorf("invalid logging level %q, one of: %s", conf.LoggingLevel, availableLoggingLevelsString)
	}
	return nil
}

func checkWorkers(conf *Config) error {
	if conf.Workers < 1 {
		return fmt.Errorf("number of workers has to be positive, got %d", conf.Workers)
	}
	return nil
}
