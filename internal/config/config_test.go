package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Env:           "development",
		DBType:        "file",
		EntriesFile:   "data/entries.json",
		SettingsFile:  "data/settings.json",
		WarnThreshold: 0.5,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := validConfig()
	assert.NoError(t, c.Validate())
}

func TestValidatePostgresNeedsDSN(t *testing.T) {
	c := validConfig()
	c.DBType = "postgres"
	assert.Error(t, c.Validate())

	c.DBDSN = "postgres://localhost/timetracker"
	assert.NoError(t, c.Validate())
}

func TestValidateFileBackendNeedsPaths(t *testing.T) {
	c := validConfig()
	c.EntriesFile = ""
	assert.Error(t, c.Validate())
}

func TestValidateEnvWhitelist(t *testing.T) {
	c := validConfig()
	c.Env = "qa"
	assert.Error(t, c.Validate())

	c.Env = "production"
	assert.Error(t, c.Validate()) // no auth service configured

	c.AuthService = "https://auth.example.com/validate"
	assert.NoError(t, c.Validate())
}

func TestValidateBounds(t *testing.T) {
	c := validConfig()
	c.WarnThreshold = 1.2
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DailyGoal = -1
	assert.Error(t, c.Validate())
}

func TestSplitHelpers(t *testing.T) {
	assert.Equal(t, []string{"A=1", "B=2"}, splitLines("A=1\r\nB=2\n"))
	assert.Equal(t, []string{"KEY", "a=b"}, splitKV("KEY=a=b"))
	assert.Nil(t, splitKV("no-equals"))
}
