package migrations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

const script = "CREATE TABLE widgets (id BIGSERIAL PRIMARY KEY)"

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("migrations/001_init.sql"))
	assert.Equal(t, "002", versionOf("002_add_index_on_x.sql"))
	assert.Equal(t, "plain.sql", versionOf("plain.sql"))
}

func TestApply_RunsScriptAndRecordsVersion(t *testing.T) {
	mock := newMock(t)
	m := NewMigrator(mock, zerolog.Nop())

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM schema_migrations`).
		WithArgs("001").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(script)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("001").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, m.Apply(context.Background(), "001", script))
}

func TestApply_SkipsAppliedVersion(t *testing.T) {
	mock := newMock(t)
	m := NewMigrator(mock, zerolog.Nop())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("001").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, m.Apply(context.Background(), "001", script))
}

func TestApply_RollsBackOnScriptError(t *testing.T) {
	mock := newMock(t)
	m := NewMigrator(mock, zerolog.Nop())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("002").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(script)).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := m.Apply(context.Background(), "002", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002")
}

func TestMigrateFromDirectory_AppliesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_second.sql"), []byte("SELECT 2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_first.sql"), []byte("SELECT 1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	mock := newMock(t)
	m := NewMigrator(mock, zerolog.Nop())

	for _, v := range []string{"001", "002"} {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(v).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
	}

	require.NoError(t, m.MigrateFromDirectory(context.Background(), dir))
}
