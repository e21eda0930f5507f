package config_test

import (
	"errors"
	"testing"

	"github.com/convox/ftprelay/pkg/config"
	"github.com/convox/ftprelay/pkg/structs"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(name string) string {
		return vars[name]
	}
}

var fxEnv = map[string]string{
	"password":        "c2VjcmV0",
	"ip":              "ftp.example.org",
	"user":            "relay",
	"remoteDirectory": "/inbound",
}

func TestLoad(t *testing.T) {
	c, err := config.Load(env(fxEnv))
	require.NoError(t, err)
	require.Equal(t, "c2VjcmV0", c.Secret)
	require.Equal(t, "ftp.example.org", c.Host)
	require.Equal(t, "relay", c.Username)
	require.Equal(t, "/inbound", c.Directory)
	require.Equal(t, config.StagingMemory, c.Staging)
	require.NotEmpty(t, c.TempDir)
}

func TestLoadTrimsOnlySecret(t *testing.T) {
	c, err := config.Load(env(map[string]string{
		"password":        " c2VjcmV0\n",
		"ip":              "ftp.example.org",
		"user":            "relay",
		"remoteDirectory": "/inbound/ drop ",
	}))
	require.NoError(t, err)
	require.Equal(t, "c2VjcmV0", c.Secret)
	require.Equal(t, "/inbound/ drop ", c.Directory)
}

func TestLoadMissing(t *testing.T) {
	c, err := config.Load(env(map[string]string{"ip": "ftp.example.org", "user": " "}))
	require.Nil(t, c)
	require.True(t, errors.Is(err, structs.ErrConfigMissing))
	require.EqualError(t, err, "ConfigMissing: required environment not set: password, remoteDirectory, user")
}

func TestLoadStaging(t *testing.T) {
	vars := map[string]string{"staging": "disk", "tmpDir": "/scratch"}
	for k, v := range fxEnv {
		vars[k] = v
	}

	c, err := config.Load(env(vars))
	require.NoError(t, err)
	require.Equal(t, config.StagingDisk, c.Staging)
	require.Equal(t, "/scratch", c.TempDir)
}

func TestLoadStagingInvalid(t *testing.T) {
	vars := map[string]string{"staging": "tape"}
	for k, v := range fxEnv {
		vars[k] = v
	}

	_, err := config.Load(env(vars))
	require.True(t, errors.Is(err, structs.ErrConfigInvalid))
}

func TestFromEnv(t *testing.T) {
	for k, v := range fxEnv {
		t.Setenv(k, v)
	}

	c, err := config.FromEnv()
	require.NoError(t, err)
	require.Equal(t, "relay", c.Username)
}

func TestAddress(t *testing.T) {
	tests := map[string]string{
		"ftp.example.org":      "ftp.example.org:21",
		"ftp.example.org:2121": "ftp.example.org:2121",
		"10.0.0.5":             "10.0.0.5:21",
		"[::1]":                "[::1]:21",
		"[::1]:2121":           "[::1]:2121",
	}

	for host, address := range tests {
		c := &config.Config{Host: host}
		require.Equal(t, address, c.Address(), host)
	}
}
