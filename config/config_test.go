package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "value")
	assert.Equal(t, "value", getEnv("TEST_CONFIG_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_CONFIG_MISSING", "fallback"))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_CONFIG_FLOAT", "12.5")
	assert.Equal(t, 12.5, getEnvFloat("TEST_CONFIG_FLOAT", 25))

	t.Setenv("TEST_CONFIG_FLOAT", "not-a-number")
	assert.Equal(t, 25.0, getEnvFloat("TEST_CONFIG_FLOAT", 25))

	assert.Equal(t, 25.0, getEnvFloat("TEST_CONFIG_FLOAT_MISSING", 25))
}
