package database

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"stallhub/internal/config"
)

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:               "db.internal",
		Port:               "5432",
		User:               "stallhub",
		Password:           "s3cret",
		Name:               "stallhub",
		SSLMode:            "disable",
		AppName:            "stallhub",
		MaxOpenConns:       12,
		ConnMaxLifetimeSec: 300,
		ConnMaxIdleTime:    time.Minute,
		StatementTimeout:   15 * time.Second,
	}
}

func TestBuildPostgresDSN(t *testing.T) {
	t.Run("session settings travel as query parameters", func(t *testing.T) {
		dsn, err := BuildPostgresDSN(testConfig())
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		assert.Equal(t, "db.internal:5432", u.Host)
		assert.Equal(t, "/stallhub", u.Path)
		pass, _ := u.User.Password()
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, "stallhub", u.Query().Get("application_name"))
		assert.Equal(t, "15000", u.Query().Get("statement_timeout"))
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
	})

	t.Run("optional settings are left out", func(t *testing.T) {
		dsn, err := BuildPostgresDSN(config.DatabaseConfig{Host: "localhost", Port: "5432", User: "app", Name: "orders"})
		require.NoError(t, err)
		assert.Equal(t, "postgres://app@localhost:5432/orders", dsn)
	})

	for _, missing := range []string{"host", "port", "user", "name"} {
		t.Run("missing "+missing, func(t *testing.T) {
			c := testConfig()
			switch missing {
			case "host":
				c.Host = ""
			case "port":
				c.Port = ""
			case "user":
				c.User = ""
			case "name":
				c.Name = ""
			}
			_, err := BuildPostgresDSN(c)
			assert.Error(t, err)
		})
	}
}

func TestTraceAttributes(t *testing.T) {
	attrs := traceAttributes(testConfig())
	assert.Contains(t, attrs, semconv.DBSystemPostgreSQL)
	assert.Contains(t, attrs, semconv.DBName("stallhub"))
	assert.Contains(t, attrs, semconv.ServerAddress("db.internal"))
	assert.Contains(t, attrs, semconv.ServerPort(5432))

	c := testConfig()
	c.Port = "pgbouncer"
	assert.Len(t, traceAttributes(c), 3)
}

func TestIdleConns(t *testing.T) {
	c := testConfig()
	assert.Equal(t, 12, idleConns(c))

	c.MaxIdleConns = 4
	assert.Equal(t, 4, idleConns(c))

	assert.Zero(t, idleConns(config.DatabaseConfig{}))
}

func TestApplyPool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applyPool(db, testConfig())
	assert.Equal(t, 12, db.Stats().MaxOpenConnections)
}

func TestNewPostgres(t *testing.T) {
	stubOpen := func(t *testing.T, db *sql.DB, err error) {
		t.Helper()
		orig := sqlOpen
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, err
		}
		t.Cleanup(func() { sqlOpen = orig })
	}

	t.Run("returns a pool with its transaction manager", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db, nil)

		mock.ExpectPing()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := NewPostgres(testConfig())
		require.NoError(t, err)
		assert.Same(t, db, got.DB)
		assert.Equal(t, 12, got.Stats().MaxOpenConnections)

		err = got.Tx.Run(context.Background(), func(ctx context.Context) error {
			_, err := Conn(ctx, got.DB).ExecContext(ctx, "UPDATE orders SET status = 'confirmed'")
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		got, err := NewPostgres(testConfig())
		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, got)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		got, err := NewPostgres(testConfig())
		assert.ErrorContains(t, err, "db ping: connection refused")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid config never opens", func(t *testing.T) {
		opened := false
		orig := sqlOpen
		sqlOpen = func(string, string) (*sql.DB, error) {
			opened = true
			return nil, errors.New("unexpected")
		}
		t.Cleanup(func() { sqlOpen = orig })

		_, err := NewPostgres(config.DatabaseConfig{})
		assert.Error(t, err)
		assert.False(t, opened)
	})
}
