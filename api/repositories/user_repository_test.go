package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreateUser_InsertsUserAndProfileInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "hashed-pw").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(id, "Alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.CreateUser("a@x.com", "hashed-pw", "Alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got != id {
		t.Fatalf("expected id %s got %s", id, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateUser("a@x.com", "hashed-pw", "Alice")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Two registrations racing past the pre-check: the loser hits the unique
// constraint and still gets ErrEmailTaken.
func TestCreateUser_UniqueViolationRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "hashed-pw").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateUser("a@x.com", "hashed-pw", "Alice")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Profile insert failure must roll the user row back too.
func TestCreateUser_ProfileInsertFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "hashed-pw").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(id, "Alice").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if _, err := repo.CreateUser("a@x.com", "hashed-pw", "Alice"); err == nil {
		t.Fatal("expected an error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetProfileByID_ScansCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM users u").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "created_at", "display_name", "bio", "profile_picture_url",
			"followers_count", "following_count",
		}).AddRow(id.String(), "b@x.com", now, "Bob", "No biography yet.", nil, 3, 1))

	profile, err := repo.GetProfileByID(id)
	if err != nil {
		t.Fatalf("GetProfileByID: %v", err)
	}
	if profile == nil {
		t.Fatal("expected a profile")
	}
	if profile.FollowersCount != 3 || profile.FollowingCount != 1 {
		t.Fatalf("unexpected counts: %+v", profile)
	}
	if !profile.DisplayName.Valid || profile.DisplayName.String != "Bob" {
		t.Fatalf("unexpected display name: %+v", profile.DisplayName)
	}
	if profile.ProfilePictureURL.Valid {
		t.Fatal("expected NULL profile picture url")
	}
}

func TestGetProfileByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery("FROM users u").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	profile, err := repo.GetProfileByID(id)
	if err != nil || profile != nil {
		t.Fatalf("expected nil, nil for a missing user, got %v %v", profile, err)
	}
}

func TestSearchUsers_WrapsQueryInWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	callerID := uuid.New()
	matchID := uuid.New()

	mock.ExpectQuery("LIKE LOWER").
		WithArgs(callerID, "%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "profile_picture_url", "is_following"}).
			AddRow(matchID.String(), "Alice", nil, true))

	users, err := repo.SearchUsers(callerID, "ali")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != matchID || !users[0].IsFollowing {
		t.Fatalf("unexpected results: %+v", users)
	}
}

func TestCreateFollow_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	follower, following := uuid.New(), uuid.New()

	mock.ExpectExec("INSERT INTO follows").
		WithArgs(follower, following).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.CreateFollow(follower, following)
	if err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if created {
		t.Fatal("expected created=false for an existing edge")
	}
}

func TestCreateFollow_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	follower, following := uuid.New(), uuid.New()

	mock.ExpectExec("INSERT INTO follows").
		WithArgs(follower, following).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateFollow(follower, following)
	if err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if !created {
		t.Fatal("expected created=true")
	}
}

func TestDeleteFollow_NoEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	follower, following := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM follows").
		WithArgs(follower, following).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteFollow(follower, following)
	if err != nil {
		t.Fatalf("DeleteFollow: %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false when no edge existed")
	}
}
