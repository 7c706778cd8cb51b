package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// SearchResult is a post row joined with its author's display name.
type SearchResult struct {
	Post       domain.Post
	AuthorName string
}

// PostRepository encapsulates post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]domain.Post, int, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int) ([]SearchResult, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `id, title, description, images, exchange_type, condition, location,
               categories, status, favorites, COALESCE(author_id::text, ''), time_posted, time_updated`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, description, images, exchange_type, condition, location, categories, status, favorites, author_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NULLIF($10,'')::uuid)
        RETURNING id, time_posted, time_updated`
	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Description,
		post.Images,
		post.ExchangeType,
		post.Condition,
		post.Location,
		post.Categories,
		post.Status,
		post.Favorites,
		post.AuthorID,
	).Scan(&post.ID, &post.TimePosted, &post.TimeUpdated)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.Images,
		&post.ExchangeType,
		&post.Condition,
		&post.Location,
		&post.Categories,
		&post.Status,
		&post.Favorites,
		&post.AuthorID,
		&post.TimePosted,
		&post.TimeUpdated,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]domain.Post, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + postColumns + ` FROM posts ORDER BY time_posted DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE author_id=$1 ORDER BY time_posted DESC`
	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) Search(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	const query = `
        SELECT p.id, p.title, p.description, p.images, p.exchange_type, p.condition, p.location,
               p.categories, p.status, p.favorites, COALESCE(p.author_id::text, ''), p.time_posted, p.time_updated,
               COALESCE(u.account_name, '')
        FROM posts p
        LEFT JOIN users u ON u.id = p.author_id
        WHERE p.title ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%'
        ORDER BY p.time_posted DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, escapeLikeTerm(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SearchResult, 0, limit)
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(
			&res.Post.ID,
			&res.Post.Title,
			&res.Post.Description,
			&res.Post.Images,
			&res.Post.ExchangeType,
			&res.Post.Condition,
			&res.Post.Location,
			&res.Post.Categories,
			&res.Post.Status,
			&res.Post.Favorites,
			&res.Post.AuthorID,
			&res.Post.TimePosted,
			&res.Post.TimeUpdated,
			&res.AuthorName,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikeTerm neutralizes LIKE wildcards so a search term matches as a
// literal substring.
func escapeLikeTerm(term string) string {
	return likeEscaper.Replace(term)
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	posts := make([]domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Description,
			&post.Images,
			&post.ExchangeType,
			&post.Condition,
			&post.Location,
			&post.Categories,
			&post.Status,
			&post.Favorites,
			&post.AuthorID,
			&post.TimePosted,
			&post.TimeUpdated,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
