package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	body := "jwt:\n  secret: s\ndb:\n  driver: memory\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	t.Setenv("CONFIG_PATH", p)
}

func TestRun_Commands(t *testing.T) {
	memoryConfig(t)

	assert.NoError(t, run("migrate", nil))
	assert.NoError(t, run("seed-admin", []string{"-email", "root@x.com", "-password", "pw"}))
	assert.ErrorIs(t, run("bogus", nil), errUsage)
}

func TestRun_SeedAdminErrorsReturned(t *testing.T) {
	memoryConfig(t)
	t.Setenv("ADMIN_PASSWORD", "")

	assert.ErrorContains(t, run("seed-admin", []string{"-email", "root@x.com"}), "-password")
	assert.Error(t, run("seed-admin", []string{"-nope"}))
	assert.Error(t, run("seed-admin", []string{"-email", "root@x.com", "-password", strings.Repeat("x", 80)}))
}
