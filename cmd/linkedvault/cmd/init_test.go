/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linkedvault/linkedvault/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "linkedvault_init_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	dataDir := filepath.Join(tmpDir, "data")

	rootCmd.SetArgs([]string{"init", "--config", configPath, "--data-dir", dataDir})
	require.NoError(t, rootCmd.Execute())

	require.True(t, config.ConfigExists(configPath))

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.NotEqual(t, "auto", cfg.Security.JWTSecret)
	assert.NotEmpty(t, cfg.Security.JWTSecret)
}
