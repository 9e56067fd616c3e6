package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "   ", DefaultServerOptions())
	assert.Error(t, err)
}

func TestConnectPingsDatabase(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	applyOptions(mockDB, Options{MaxOpenConns: 3, MaxIdleConns: 2, ConnMaxLifetime: time.Minute, ConnMaxIdleTime: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, mockDB.PingContext(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("DB_PING_TIMEOUT", "9s")
	opts := OptionsFromEnv(DefaultServerOptions())
	assert.Equal(t, 42, opts.MaxOpenConns)
	assert.Equal(t, 9*time.Second, opts.PingTimeout)
	assert.Equal(t, 5, opts.MaxIdleConns)
}
