package simulator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tracks", func(c *Config) { c.NumTracks = 0 }},
		{"negative sectors", func(c *Config) { c.SectorsPerTrack = -1 }},
		{"negative seek time", func(c *Config) { c.SeekTimePerTrack = -0.1 }},
		{"zero rpm", func(c *Config) { c.RPM = 0 }},
		{"zero buffers", func(c *Config) { c.TotalBuffers = 0 }},
		{"zero hot segment", func(c *Config) { c.MaxHotSegment = 0 }},
		{"zero quantum", func(c *Config) { c.Quantum = 0 }},
		{"negative syscall time", func(c *Config) { c.SyscallTime = -1 }},
		{"negative interrupt time", func(c *Config) { c.InterruptTime = -1 }},
		{"negative compute time", func(c *Config) { c.ComputeTime = -1 }},
		{"zero track accesses", func(c *Config) { c.MaxTrackAccesses = 0 }},
		{"zero processes", func(c *Config) { c.NumProcesses = 0 }},
		{"unknown scenario", func(c *Config) { c.Scenario = "bogus" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	config := DefaultConfig()
	config.Scheduler = SchedulerNLOOK
	config.Scenario = "cache-test"

	data, err := json.Marshal(&config)
	require.NoError(t, err)
	require.Contains(t, string(data), `"scheduler":"nlook"`)

	var decoded Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, config, decoded)
}

func TestSchedulerKindRejectsUnknownJSON(t *testing.T) {
	var k SchedulerKind
	require.Error(t, json.Unmarshal([]byte(`"elevator"`), &k))
}
