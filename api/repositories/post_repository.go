package repositories

import (
	"database/sql"
	"strings"

	"github.com/Allahviranloo/Ramble/api/models"

	"github.com/google/uuid"
)

// interface
type PostRepository interface {
	CreatePost(ownerID uuid.UUID, caption string) (*models.Post, error)
	GetPostByID(id uuid.UUID) (*models.Post, error)
	DeletePost(id uuid.UUID) error
	GetRecentByOwner(ownerID uuid.UUID, limit int) ([]models.Post, error)
	GetFeed(userID uuid.UUID, limit int) ([]models.FeedPost, error)
}

// implementation
type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{
		db: db,
	}
}

func (pr *postRepository) CreatePost(ownerID uuid.UUID, caption string) (*models.Post, error) {
	var post models.Post

	err := pr.db.QueryRow(
		`INSERT INTO posts (owner_id, caption)
		 VALUES ($1, $2)
		 RETURNING id, owner_id, caption, created_at`,
		ownerID, strings.TrimSpace(caption),
	).Scan(
		&post.ID,
		&post.OwnerID,
		&post.Caption,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (pr *postRepository) GetPostByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post

	err := pr.db.QueryRow(
		`SELECT id, owner_id, caption, created_at FROM posts WHERE id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.OwnerID,
		&post.Caption,
		&post.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // post not found
		}
		return nil, err
	}

	return &post, nil
}

func (pr *postRepository) DeletePost(id uuid.UUID) error {
	_, err := pr.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (pr *postRepository) GetRecentByOwner(ownerID uuid.UUID, limit int) ([]models.Post, error) {
	var posts []models.Post

	rows, err := pr.db.Query(
		`SELECT id, owner_id, caption, created_at
		 FROM posts
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		ownerID, limit,
	)
	if err != nil {
		return posts, err
	}
	defer rows.Close()

	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.OwnerID,
			&post.Caption,
			&post.CreatedAt,
		); err != nil {
			return posts, err
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return posts, err
	}

	return posts, nil
}

// GetFeed returns posts authored by the user or by anyone the user follows,
// newest first, bounded by limit.
func (pr *postRepository) GetFeed(userID uuid.UUID, limit int) ([]models.FeedPost, error) {
	var posts []models.FeedPost

	rows, err := pr.db.Query(
		`SELECT p.id, p.owner_id, p.caption, p.created_at, pf.display_name
		 FROM posts p
		 JOIN profiles pf ON pf.user_id = p.owner_id
		 WHERE p.owner_id = $1
			OR p.owner_id IN (
				SELECT following_id
				FROM follows
				WHERE follower_id = $1
			)
		 ORDER BY p.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return posts, err
	}
	defer rows.Close()

	for rows.Next() {
		var post models.FeedPost
		if err := rows.Scan(
			&post.ID,
			&post.OwnerID,
			&post.Caption,
			&post.CreatedAt,
			&post.DisplayName,
		); err != nil {
			return posts, err
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return posts, err
	}

	return posts, nil
}
