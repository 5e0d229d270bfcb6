// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/lpvault/lpvault/consts"
)

func TestNewOverlaysDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{"port": 9999, "logLevel": "debug"}`))
	require.NoError(err)

	// Overridden fields.
	require.Equal(9999, c.HTTPPort)
	require.Equal(logging.Debug, c.LogLevel)

	// Everything else keeps its default.
	require.Equal(defaultHTTPHost, c.HTTPHost)
	require.Equal(defaultShutdownTimeout, c.ShutdownTimeout)
	require.Equal(defaultStreamingBacklog, c.StreamingBacklogSize)
	require.False(c.TraceConfig.Enabled)

	_, err = New([]byte(`{`))
	require.Error(err)
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	// Empty path falls back to defaults.
	c, err := Load("")
	require.NoError(err)
	require.Equal(Default(), c)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"host": "0.0.0.0", "requestExpiryWindow": 60000000000}`), 0o600))
	c, err = Load(path)
	require.NoError(err)
	require.Equal("0.0.0.0", c.HTTPHost)
	require.Equal(60*time.Second, c.RequestExpiryWindow)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(err)
}

func TestLogConfig(t *testing.T) {
	require := require.New(t)

	c := Default()
	c.LogDir = "/tmp/lpvault-logs"
	lc := c.LogConfig()
	require.Equal(consts.Name, lc.LoggerName)
	require.Equal(c.LogLevel, lc.LogLevel)
	require.Equal(c.LogDir, lc.Directory)
	require.Equal(defaultLogMaxSize, lc.MaxSize)
}

func TestAddress(t *testing.T) {
	require := require.New(t)

	c := Default()
	c.HTTPHost = "10.1.2.3"
	c.HTTPPort = 8123
	require.Equal("10.1.2.3:8123", c.Address())
}
