package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var resumeColumns = []string{"id", "user_id", "name", "content", "ats_score", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateStoresContentAndNullScore(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	resume := Resume{
		ID:        "r-1",
		UserID:    "u-1",
		Name:      "Backend",
		Content:   []byte(`{"summary":"hi"}`),
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("r-1", "u-1", "Backend", []byte(`{"summary":"hi"}`), nil, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateScopesByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	score := 87.5

	mock.ExpectQuery("UPDATE resumes").
		WithArgs("r-1", "u-1", "Renamed", []byte(`{}`), 87.5, updated).
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow("r-1", "u-1", "Renamed", []byte(`{}`), 87.5, created, updated))

	got, err := repo.Update(context.Background(), Resume{
		ID:        "r-1",
		UserID:    "u-1",
		Name:      "Renamed",
		Content:   []byte(`{}`),
		ATSScore:  &score,
		UpdatedAt: updated,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected timestamps %v %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.ATSScore == nil || *got.ATSScore != 87.5 {
		t.Fatalf("expected score 87.5, got %v", got.ATSScore)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("UPDATE resumes").WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), Resume{ID: "r-x", UserID: "u-1", Content: []byte(`{}`)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDNullScore(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, user_id, name, content, ats_score, created_at, updated_at FROM resumes").
		WithArgs("r-1", "u-1").
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow("r-1", "u-1", "Backend", []byte(`{"skills":["Go"]}`), nil, now, now))

	got, err := repo.GetByID(context.Background(), "u-1", "r-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ATSScore != nil {
		t.Fatalf("expected nil score, got %v", *got.ATSScore)
	}
	if string(got.Content) != `{"skills":["Go"]}` {
		t.Fatalf("unexpected content %s", got.Content)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id").WithArgs("r-1", "u-2").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "u-2", "r-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserOrdersByUpdatedAt(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("ORDER BY updated_at DESC").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow("r-2", "u-1", "Newer", []byte(`{}`), 70.0, now, now).
			AddRow("r-1", "u-1", "Older", []byte(`{}`), nil, now.Add(-time.Hour), now.Add(-time.Hour)))

	list, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != "r-2" || list[1].ID != "r-1" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPGRepoListByUserEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM resumes").WithArgs("u-1").WillReturnRows(sqlmock.NewRows(resumeColumns))

	list, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resumes").WithArgs("r-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM resumes").WithArgs("r-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "u-1", "r-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), "u-1", "r-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
