package main

import (
	"testing"

	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRunReturnsStartupErrors(t *testing.T) {
	cfg := &config.Config{
		Env:  "test",
		Port: "0",
		Database: config.DBConfig{
			PostgresURL: "postgres://journal@127.0.0.1:1/journal?sslmode=disable&connect_timeout=1",
		},
	}

	err := run(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialize database")
}
