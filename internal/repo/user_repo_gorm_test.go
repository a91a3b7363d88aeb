package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gin-user-rbac/internal/domain"
)

var userCols = []string{"id", "name", "email", "password", "role", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return NewUserRepo(db), mock
}

func TestUserRepo_FindByID(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "John", "j@x.com", "$2a$10$hash", "ADMIN", now, now))

	u, err := r.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByEmail_Missing(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := r.FindByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByID_DBError(t *testing.T) {
	r, mock := newMockRepo(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(boom)

	u, err := r.FindByID(context.Background(), "u-1")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, boom)
}

func TestUserRepo_List(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "A", "a@x.com", "h", "ADMIN", now, now).
			AddRow("u-2", "B", "b@x.com", "h", "INTERN", now, now))
	all, err := r.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u-1", all[0].ID)
	assert.Equal(t, "u-2", all[1].ID)

	role := domain.RoleIntern
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 ORDER BY created_at ASC`).
		WithArgs("INTERN").
		WillReturnRows(sqlmock.NewRows(userCols))
	none, err := r.List(context.Background(), &role)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))

	u := &domain.User{Name: "John", Email: "j@x.com", Password: "h", Role: domain.RoleAdmin}
	err := r.Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.NotEmpty(t, u.ID, "id is generated before insert")
}

func TestUserRepo_Update_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectRollback()

	name := "x"
	u, err := r.Update(context.Background(), "missing", domain.UserPatch{Name: &name})
	assert.Nil(t, u)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Delete(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-1", "John", "j@x.com", "h", "ENGINEER", now, now))
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := r.Delete(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "j@x.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Delete_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectRollback()

	_, err := r.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDupKey(t *testing.T) {
	assert.True(t, isDupKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDupKey(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.idx_users_email'")))
	assert.False(t, isDupKey(errors.New("connection refused")))
}
