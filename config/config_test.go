package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	type testCase struct {
		Name      string
		Modify    func(c *Config)
		CheckPort bool
		IsErr     bool
	}

	for _, tc := range []testCase{
		{"Default", func(c *Config) {}, true, false},
		{"WrongLevel", func(c *Config) { c.LoggingLevel = "verbose" }, false, true},
		{"NoWorkers", func(c *Config) { c.Workers = 0 }, false, true},
		{"LowPortIgnored", func(c *Config) { c.Port = 80 }, false, false},
		{"LowPort", func(c *Config) { c.Port = 80 }, true, true},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			conf := Default()
			tc.Modify(&conf)
			err := Check(&conf, tc.CheckPort)
			assert.Equal(t, tc.IsErr, err != nil)
		})
	}
}

func TestReadEnv(t *testing.T) {
	require.NoError(t, os.Setenv("CHIPSTACK_DB_URL", "mongodb://localhost:27017/chipstack"))
	require.NoError(t, os.Setenv("CHIPSTACK_PORT", "4000"))
	require.NoError(t, os.Setenv("CHIPSTACK_LOG_LEVEL", "DEBUG"))
	defer func() {
		os.Unsetenv("CHIPSTACK_DB_URL")
		os.Unsetenv("CHIPSTACK_PORT")
		os.Unsetenv("CHIPSTACK_LOG_LEVEL")
	}()

	conf := Default()
	ReadEnv(&conf)

	assert.Equal(t, "mongodb://localhost:27017/chipstack", conf.DbURL)
	assert.Equal(t, int64(4000), conf.Port)
	assert.Equal(t, "debug", conf.LoggingLevel)
}

func TestNamedLoggerLevel(t *testing.T) {
	logger := NamedLogger("config-test")
	assert.Same(t, logger, NamedLogger("config-test"))

	SetLoggingLevel(logrus.WarnLevel)
	defer SetLoggingLevel(logrus.InfoLevel)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Equal(t, logrus.WarnLevel, NamedLogger("config-test-late").GetLevel())
}
