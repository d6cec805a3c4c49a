package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stallhub/internal/database"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

var userCols = []string{"id", "email", "name", "phone", "password_hash", "roles_json", "active", "email_verified", "last_login_at", "created_at", "updated_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	u := &model.User{
		ID:        "u-1",
		Email:     "Ana@Example.com",
		Name:      "Ana",
		Roles:     []model.RoleAssignment{{Role: model.RoleCustomer}},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs("u-1", "ana@example.com", "Ana", "", "", `[{"role":"customer"}]`, true, false, nil, now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, u))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := repo.Create(ctx, u)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow("u-1", "ana@example.com", "Ana", "", "hash",
				`[{"role":"staff","business_id":"b-1"}]`, true, true, now, now, now)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
			WithArgs("ana@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "ANA@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, []model.RoleAssignment{{Role: model.RoleStaff, BusinessID: "b-1"}}, u.Roles)
		require.NotNil(t, u.LastLoginAt)
		assert.True(t, u.LastLoginAt.Equal(now))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "missing@example.com")
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, u)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(ctx, &model.User{ID: "missing"})
	assert.True(t, IsNoRowsError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	active := true

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE`).
		WithArgs("%ana%", "%ana%", `[{"role":"staff"}]`, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE (.+) ORDER BY created_at DESC").
		WithArgs("%ana%", "%ana%", `[{"role":"staff"}]`, true, 20, 40).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "ana@example.com", "Ana", "", "", `[]`, true, false, nil, now, now))

	res, err := repo.List(ctx, repository.UserFilter{
		Search: "ana",
		Role:   model.RoleStaff,
		Active: &active,
		Page:   repository.PageQuery{Limit: 20, Offset: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Nil(t, res.Items[0].LastLoginAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListByBusinessAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE roles_json @>").
		WithArgs(`[{"business_id":"b-1"}]`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-2", "cook@example.com", "Cook", "", "", `[{"role":"staff","business_id":"b-1"}]`, true, true, nil, now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active"}).AddRow(10, 7))

	staff, err := repo.ListByBusiness(ctx, "b-1")
	require.NoError(t, err)
	assert.Len(t, staff, 1)

	total, activeCount, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 7, activeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_JoinsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tm := database.NewTxManager(db)
	err = tm.Run(context.Background(), func(ctx context.Context) error {
		return NewUserPostgres(db).Delete(ctx, "u-1")
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
