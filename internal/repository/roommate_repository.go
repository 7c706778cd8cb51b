package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-market/marketplace-service/internal/domain"
)

// RoommateRepository encapsulates roommate listing persistence.
type RoommateRepository interface {
	Create(ctx context.Context, roommate *domain.Roommate) error
	GetByID(ctx context.Context, id string) (*domain.Roommate, error)
	List(ctx context.Context, limit int) ([]domain.Roommate, error)
}

type roommateRepository struct {
	pool *pgxpool.Pool
}

// NewRoommateRepository instantiates repository.
func NewRoommateRepository(pool *pgxpool.Pool) RoommateRepository {
	return &roommateRepository{pool: pool}
}

const roommateColumns = `id, title, description, images, places_to_live, region, on_campus, year,
               status, favorites, COALESCE(author_id::text, ''), time_posted, time_updated`

func (r *roommateRepository) Create(ctx context.Context, roommate *domain.Roommate) error {
	const query = `
        INSERT INTO roommates (title, description, images, places_to_live, region, on_campus, year, status, favorites, author_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NULLIF($10,'')::uuid)
        RETURNING id, time_posted, time_updated`
	return r.pool.QueryRow(ctx, query,
		roommate.Title,
		roommate.Description,
		roommate.Images,
		roommate.PlacesToLive,
		roommate.Region,
		roommate.OnCampus,
		roommate.Year,
		roommate.Status,
		roommate.Favorites,
		roommate.AuthorID,
	).Scan(&roommate.ID, &roommate.TimePosted, &roommate.TimeUpdated)
}

func (r *roommateRepository) GetByID(ctx context.Context, id string) (*domain.Roommate, error) {
	const query = `SELECT ` + roommateColumns + ` FROM roommates WHERE id=$1`
	var roommate domain.Roommate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&roommate.ID,
		&roommate.Title,
		&roommate.Description,
		&roommate.Images,
		&roommate.PlacesToLive,
		&roommate.Region,
		&roommate.OnCampus,
		&roommate.Year,
		&roommate.Status,
		&roommate.Favorites,
		&roommate.AuthorID,
		&roommate.TimePosted,
		&roommate.TimeUpdated,
	); err != nil {
		return nil, err
	}
	return &roommate, nil
}

func (r *roommateRepository) List(ctx context.Context, limit int) ([]domain.Roommate, error) {
	const query = `SELECT ` + roommateColumns + ` FROM roommates ORDER BY time_posted DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roommates := make([]domain.Roommate, 0)
	for rows.Next() {
		var roommate domain.Roommate
		if err := rows.Scan(
			&roommate.ID,
			&roommate.Title,
			&roommate.Description,
			&roommate.Images,
			&roommate.PlacesToLive,
			&roommate.Region,
			&roommate.OnCampus,
			&roommate.Year,
			&roommate.Status,
			&roommate.Favorites,
			&roommate.AuthorID,
			&roommate.TimePosted,
			&roommate.TimeUpdated,
		); err != nil {
			return nil, err
		}
		roommates = append(roommates, roommate)
	}
	return roommates, rows.Err()
}
