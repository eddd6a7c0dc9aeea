// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/models"
)

func newTestChangeRepo(t *testing.T) (*changeRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &changeRepository{
		db: &DB{
			DB:                 db,
			builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
			errorClassificator: NewSQLiteErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock, db
}

func fileRows(records ...models.FileRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"file_id", "encrypted_meta", "mtime", "size", "deleted", "sequence"})
	for _, r := range records {
		rows.AddRow(r.FileID, r.EncryptedMeta, r.MTime, r.Size, r.Deleted, r.Sequence)
	}
	return rows
}

func TestCurrentSequence_Empty(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(0))

	seq, err := repo.CurrentSequence(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 0 {
		t.Errorf("expected sequence 0, got %d", seq)
	}
}

func TestCurrentSequence_DBError(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CurrentSequence(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got: %v", err)
	}
}

func TestManifest_ExcludesTombstones(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT file_id, encrypted_meta").
		WillReturnRows(fileRows(
			models.FileRecord{FileID: "f1", EncryptedMeta: "m1", MTime: 100, Size: 10, Sequence: 1},
			models.FileRecord{FileID: "f2", EncryptedMeta: "m2", MTime: 200, Size: 20, Sequence: 3},
		))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(4))
	mock.ExpectCommit()

	manifest, err := repo.Manifest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(manifest.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(manifest.Entries))
	}
	if manifest.Sequence != 4 {
		t.Errorf("expected sequence 4, got %d", manifest.Sequence)
	}
}

func TestManifest_Idempotent(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	for range 2 {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT file_id, encrypted_meta").
			WillReturnRows(fileRows(models.FileRecord{FileID: "f1", EncryptedMeta: "m1", Sequence: 1}))
		mock.ExpectQuery("SELECT COALESCE").
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
		mock.ExpectCommit()
	}

	first, err := repo.Manifest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.Manifest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Sequence != second.Sequence || len(first.Entries) != len(second.Entries) {
		t.Errorf("expected identical manifests, got %+v and %+v", first, second)
	}
}

func TestChangesSince_IncludesTombstones(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT file_id, encrypted_meta").
		WithArgs(int64(1)).
		WillReturnRows(fileRows(
			models.FileRecord{FileID: "f2", EncryptedMeta: "m2", Sequence: 2},
			models.FileRecord{FileID: "f1", EncryptedMeta: "m1", Deleted: true, Sequence: 3},
		))

	changes, err := repo.ChangesSince(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if !changes[1].Deleted {
		t.Errorf("expected tombstone in change list, got %+v", changes[1])
	}
	if changes[0].Sequence >= changes[1].Sequence {
		t.Errorf("expected ascending sequence order, got %d then %d", changes[0].Sequence, changes[1].Sequence)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT file_id, encrypted_meta").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPut_InsertAssignsFirstSequence(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("f1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(0))
	mock.ExpectExec("INSERT INTO files").
		WithArgs("f1", "m1", int64(100), int64(10), false, int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.Put(context.Background(), models.FileRecord{
		FileID: "f1", EncryptedMeta: "m1", MTime: 100, Size: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sequence != 1 {
		t.Errorf("expected sequence 1, got %d", result.Sequence)
	}
	if !result.IsNew {
		t.Error("expected IsNew=true for first upload")
	}
}

func TestPut_RetriesWhenDatabaseIsBusy(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	// first attempt fails on the file lock, second goes through
	mock.ExpectBegin().
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("f1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(0))
	mock.ExpectExec("INSERT INTO files").
		WithArgs("f1", "m1", int64(100), int64(10), false, int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.Put(context.Background(), models.FileRecord{
		FileID: "f1", EncryptedMeta: "m1", MTime: 100, Size: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sequence != 1 {
		t.Errorf("expected sequence 1, got %d", result.Sequence)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPut_UpdateExistingRow(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(5))
	mock.ExpectExec("UPDATE files").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.Put(context.Background(), models.FileRecord{
		FileID: "f1", EncryptedMeta: "m2", MTime: 200, Size: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sequence != 6 {
		t.Errorf("expected sequence 6, got %d", result.Sequence)
	}
	if result.IsNew {
		t.Error("expected IsNew=false for re-upload of a live row")
	}
}

func TestPut_ResurrectedTombstoneIsNew(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(true))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))
	mock.ExpectExec("UPDATE files").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.Put(context.Background(), models.FileRecord{FileID: "f1", EncryptedMeta: "m3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsNew {
		t.Error("expected IsNew=true after re-upload over a tombstone")
	}
	if result.Sequence != 8 {
		t.Errorf("expected sequence 8, got %d", result.Sequence)
	}
}

func TestTombstone_AssignsFreshSequence(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(false))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(3))
	mock.ExpectExec("UPDATE files").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	seq, err := repo.Tombstone(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 4 {
		t.Errorf("expected sequence 4, got %d", seq)
	}
}

func TestTombstone_NotFound(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT deleted FROM files").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Tombstone(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReset_TruncatesChangeLog(t *testing.T) {
	repo, mock, db := newTestChangeRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM files").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
