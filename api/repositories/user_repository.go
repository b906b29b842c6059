package repositories

import (
	"database/sql"
	"errors"

	"github.com/Allahviranloo/Ramble/api/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailTaken = errors.New("email already registered")
)

// interface
type UserRepository interface {
	CreateUser(email string, passwordHash string, displayName string) (uuid.UUID, error)
	GetCredentialsByEmail(email string) (uuid.UUID, string, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetProfileByID(id uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(id uuid.UUID, displayName string, bio string) (*models.Profile, error)
	SearchUsers(callerID uuid.UUID, query string) ([]models.SearchedUser, error)
	CreateFollow(followerID uuid.UUID, followingID uuid.UUID) (bool, error)
	DeleteFollow(followerID uuid.UUID, followingID uuid.UUID) (bool, error)
}

// implementation
type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateUser inserts the user and its profile in one transaction. Both rows
// land or neither does. A duplicate email surfaces as ErrEmailTaken, whether
// caught by the pre-check or by the unique constraint when two registrations
// race.
func (ur *userRepository) CreateUser(email string, passwordHash string, displayName string) (uuid.UUID, error) {
	tx, err := ur.db.Begin()
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var exists bool
	err = tx.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)",
		email,
	).Scan(&exists)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		err = ErrEmailTaken
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = tx.QueryRow(
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
		email, passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrEmailTaken
		}
		return uuid.Nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO profiles (user_id, display_name) VALUES ($1, $2)",
		id, displayName,
	)
	if err != nil {
		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			err = ErrEmailTaken
		}
		return uuid.Nil, err
	}

	return id, nil
}

// GetCredentialsByEmail fetches the user's id and password_hash by email.
func (ur *userRepository) GetCredentialsByEmail(email string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var passwordHash string

	query := `SELECT id, password_hash FROM users WHERE email = $1`
	err := ur.db.QueryRow(query, email).Scan(&id, &passwordHash)
	if err != nil {
		return uuid.Nil, "", err
	}

	return id, passwordHash, nil
}

func (ur *userRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User

	err := ur.db.QueryRow(
		`SELECT u.id, u.email, u.created_at, p.display_name
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`,
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.DisplayName,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // user not found
		}
		return nil, err
	}

	return &user, nil
}

func (ur *userRepository) GetProfileByID(id uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile

	err := ur.db.QueryRow(
		`SELECT
			u.id,
			u.email,
			u.created_at,
			p.display_name,
			p.bio,
			p.profile_picture_url,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS following_count
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`,
		id,
	).Scan(
		&profile.ID,
		&profile.Email,
		&profile.CreatedAt,
		&profile.DisplayName,
		&profile.Bio,
		&profile.ProfilePictureURL,
		&profile.FollowersCount,
		&profile.FollowingCount,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // user not found
		}
		return nil, err
	}

	return &profile, nil
}

func (ur *userRepository) UpdateProfile(id uuid.UUID, displayName string, bio string) (*models.Profile, error) {
	var profile models.Profile

	err := ur.db.QueryRow(
		`UPDATE profiles SET display_name = $1, bio = $2
		 WHERE user_id = $3
		 RETURNING user_id, display_name, bio, profile_picture_url`,
		displayName, bio, id,
	).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Bio,
		&profile.ProfilePictureURL,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

// SearchUsers matches display names case-insensitively, excluding the
// caller, and flags the rows the caller already follows.
func (ur *userRepository) SearchUsers(callerID uuid.UUID, query string) ([]models.SearchedUser, error) {
	var users []models.SearchedUser

	rows, err := ur.db.Query(
		`SELECT
			u.id,
			p.display_name,
			p.profile_picture_url,
			EXISTS (
				SELECT 1 FROM follows
				WHERE follower_id = $1 AND following_id = u.id
			) AS is_following
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE LOWER(p.display_name) LIKE LOWER($2) AND u.id <> $1
		 LIMIT 20`,
		callerID, "%"+query+"%",
	)
	if err != nil {
		return users, err
	}
	defer rows.Close()

	for rows.Next() {
		var user models.SearchedUser
		if err := rows.Scan(
			&user.ID,
			&user.DisplayName,
			&user.ProfilePictureURL,
			&user.IsFollowing,
		); err != nil {
			return users, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return users, err
	}

	return users, nil
}

// CreateFollow inserts the directed edge. Returns false when the edge
// already exists.
func (ur *userRepository) CreateFollow(followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	result, err := ur.db.Exec(
		`INSERT INTO follows (follower_id, following_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		followerID, followingID,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// DeleteFollow removes the directed edge. Returns false when no edge existed.
func (ur *userRepository) DeleteFollow(followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	result, err := ur.db.Exec(
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
