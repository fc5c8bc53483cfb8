package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "")
	assert.Equal(t, "data", GetEnvString("TEST_ENV_STRING", "data"))

	t.Setenv("TEST_ENV_STRING", "/var/lib/newsdiary")
	assert.Equal(t, "/var/lib/newsdiary", GetEnvString("TEST_ENV_STRING", "data"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 10},
		{"25", 25},
		{" 7 ", 7},
		{"-3", -3},
		{"ten", 10},
		{"1.5", 10},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_ENV_INT", 10))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"true", false, true},
		{"T", false, true},
		{"0", true, false},
		{"FALSE", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("TEST_ENV_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_ENV_DURATION", "1h30m")
	assert.Equal(t, 90*time.Minute, GetEnvDuration("TEST_ENV_DURATION", time.Hour))

	t.Setenv("TEST_ENV_DURATION", "an hour")
	assert.Equal(t, time.Hour, GetEnvDuration("TEST_ENV_DURATION", time.Hour))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_ENV_LIST", "정치, 경제 ,,IT/과학")
	assert.Equal(t, []string{"정치", "경제", "IT/과학"}, GetEnvStringList("TEST_ENV_LIST", nil))

	t.Setenv("TEST_ENV_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_ENV_LIST", []string{"x"}))
}
