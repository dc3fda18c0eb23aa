package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ db *pgxpool.Pool }

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

func (r *Repo) GetByID(ctx context.Context, id int64) (*Service, error) {
	const q = `SELECT id,name,period,max_days,price,active,created_at,updated_at
	           FROM services WHERE id=$1`
	row := r.db.QueryRow(ctx, q, id)
	var s Service
	if err := row.Scan(&s.ID, &s.Name, &s.Period, &s.MaxDays, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) List(ctx context.Context) ([]Service, error) {
	const q = `SELECT id,name,period,max_days,price,active,created_at,updated_at
	           FROM services
	           ORDER BY name`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Period, &s.MaxDays, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, s Service) (int64, error) {
	const q = `
        INSERT INTO services(name,period,max_days,price,active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id;
    `
	var id int64
	err := r.db.QueryRow(ctx, q, s.Name, s.Period, s.MaxDays, s.Price, s.Active).Scan(&id)
	return id, err
}
