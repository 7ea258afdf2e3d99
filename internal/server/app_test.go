package server

import (
	"context"
	"testing"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/config"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.DatabaseDSN = ""
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	c := testConfig()

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.IsType(t, &repomanager.InMemoryRepositoryManager{}, app.repos)
	assert.NotNil(t, app.http)
	assert.NotNil(t, app.grpc)
}

func TestNewApp_GRPCDisabled(t *testing.T) {
	c := testConfig()
	c.GRPCAddr = ""

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, app.grpc)
}

func TestNewApp_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown mutation policy", func(c *config.Config) { c.MutationPolicy = "everyone" }},
		{"empty secret", func(c *config.Config) { c.SecretKey = "" }},
		{"zero ttl", func(c *config.Config) { c.TokenTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(c)

			_, err := newApp(c, logging.NewDiscardLogger(), repomanager.NewInMemoryRepositoryManager())
			assert.Error(t, err)
		})
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := newApp(testConfig(), logging.NewDiscardLogger(), repomanager.NewInMemoryRepositoryManager())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_StopsWhenListenFails(t *testing.T) {
	c := testConfig()
	c.HTTPAddr = "127.0.0.1:99999"
	c.GRPCAddr = ""
	app, err := newApp(c, logging.NewDiscardLogger(), repomanager.NewInMemoryRepositoryManager())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after the http listener failed")
	}
}

func TestRun_ReturnsGRPCListenError(t *testing.T) {
	c := testConfig()
	c.GRPCAddr = "127.0.0.1:99999"
	app, err := newApp(c, logging.NewDiscardLogger(), repomanager.NewInMemoryRepositoryManager())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "grpc server")
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after the grpc listener failed")
	}
}
