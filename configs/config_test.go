package configs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-store-api/configs"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "DB_NAME", "BOOK_COLLECTION", "STORE_DRIVER",
		"BADGER_PATH", "AUDIT_ENABLED", "LOG_LEVEL", "LOG_FORMAT", "CONNECT_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := configs.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5555", cfg.Port)
	assert.Equal(t, ":5555", cfg.Addr())
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "books-collection", cfg.DBName)
	assert.Equal(t, "books", cfg.BookCollection)
	assert.Equal(t, configs.DriverMongo, cfg.StoreDriver)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "badger")
	t.Setenv("BADGER_PATH", "/tmp/books")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := configs.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, configs.DriverBadger, cfg.StoreDriver)
	assert.Equal(t, "/tmp/books", cfg.BadgerPath)
	assert.False(t, cfg.AuditEnabled)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "STORE_DRIVER", "postgres"},
		{"non numeric port", "PORT", "http"},
		{"bad audit flag", "AUDIT_ENABLED", "maybe"},
		{"bad connect timeout", "CONNECT_TIMEOUT", "soon"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := configs.FromEnv()
			assert.Error(t, err)
		})
	}
}
