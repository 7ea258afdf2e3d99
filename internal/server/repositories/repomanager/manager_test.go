package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/memory"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/tasks"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ RepositoryManager = (*PostgresRepositoryManager)(nil)
	_ RepositoryManager = (*InMemoryRepositoryManager)(nil)
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return db, mock
}

func TestNew_EmptyDSNSelectsMemory(t *testing.T) {
	m, err := New(context.Background(), "")
	require.NoError(t, err)

	_, ok := m.(*InMemoryRepositoryManager)
	assert.True(t, ok)
	assert.IsType(t, &memory.UserRepository{}, m.Users())
	assert.IsType(t, &memory.TaskRepository{}, m.Tasks())
	assert.NoError(t, m.RunMigrations(context.Background()))
	assert.NoError(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close())
}

func TestInMemory_PingCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewInMemoryRepositoryManager().Ping(ctx), context.Canceled)
}

func TestPostgres_Factories(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &tasks.PostgresRepository{}, m.Tasks())
}

func TestPostgres_Ping(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)

	mock.ExpectPing()
	assert.NoError(t, m.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("refused"))
	err := m.Ping(context.Background())
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.ErrorContains(t, err, "refused")
}

func TestOpenPostgres(t *testing.T) {
	db, mock := newDB(t)

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://example/db", dsn)
		return db, nil
	}
	defer func() { sqlOpen = orig }()

	mock.ExpectPing()
	m, err := OpenPostgres(context.Background(), "postgres://example/db")
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, m.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_PingFails(t *testing.T) {
	db, mock := newDB(t)

	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	defer func() { sqlOpen = orig }()

	mock.ExpectPing().WillReturnError(errors.New("no route"))
	mock.ExpectClose()

	_, err := OpenPostgres(context.Background(), "postgres://example/db")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_OpenFails(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	defer func() { sqlOpen = orig }()

	_, err := OpenPostgres(context.Background(), "::")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if got != db {
			return errors.New("unexpected db")
		}
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	assert.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	assert.EqualError(t, err, "migrate: boom")
}
