package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCollectionRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Load Query Failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM collections WHERE key = ?`)).
			WithArgs("albums").
			WillReturnError(errors.New("disk I/O error"))

		_, err = NewCollectionRepository(db).Load(ctx, "albums")
		if err == nil || !strings.Contains(err.Error(), "failed to load collection") {
			t.Errorf("expected load failure, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("Save Exec Failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO collections (key, data, revision, updated_at)`)).
			WithArgs("albums", "[]", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("database is locked"))

		rev, err := NewCollectionRepository(db).Save(ctx, "albums", []byte(`[]`))
		if err == nil || !strings.Contains(err.Error(), "database is locked") {
			t.Errorf("expected save failure, got %v", err)
		}
		if rev != "" {
			t.Errorf("expected empty revision, got %q", rev)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("Stat Scan Failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, revision, LENGTH(data), updated_at`)).
			WithArgs("albums").
			WillReturnRows(sqlmock.NewRows([]string{"key", "revision", "size", "updated_at"}).
				AddRow("albums", "rev", "not-a-number", "not-a-time"))

		_, err = NewCollectionRepository(db).Stat(ctx, "albums")
		if err == nil || !strings.Contains(err.Error(), "failed to stat collection") {
			t.Errorf("expected stat failure, got %v", err)
		}
	})
}
