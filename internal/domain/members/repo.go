package members

import (
	"context"
	"database/sql"

	"github.com/Spok95/gym-crm/internal/domain/services"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ db *pgxpool.Pool }

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

const memberCols = `m.id, m.full_name, m.phone, m.service_id, m.status, m.start_date,
	m.pre_freeze_attendance, m.total_attendance, m.days_left, m.created_at, m.updated_at,
	s.id, s.name, s.period, s.max_days, s.price, s.active, s.created_at, s.updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var (
		m         Member
		serviceID sql.NullInt64
		daysLeft  sql.NullInt32

		svcID      sql.NullInt64
		svcName    sql.NullString
		svcPeriod  sql.NullInt32
		svcMaxDays sql.NullInt32
		svcPrice   sql.NullFloat64
		svcActive  sql.NullBool
		svcCreated sql.NullTime
		svcUpdated sql.NullTime
	)
	if err := row.Scan(
		&m.ID, &m.FullName, &m.Phone, &serviceID, &m.Status, &m.StartDate,
		&m.PreFreezeAttendance, &m.TotalAttendance, &daysLeft, &m.CreatedAt, &m.UpdatedAt,
		&svcID, &svcName, &svcPeriod, &svcMaxDays, &svcPrice, &svcActive, &svcCreated, &svcUpdated,
	); err != nil {
		return nil, err
	}
	if serviceID.Valid {
		v := serviceID.Int64
		m.ServiceID = &v
	}
	if daysLeft.Valid {
		v := int(daysLeft.Int32)
		m.DaysLeft = &v
	}
	if svcID.Valid {
		m.Service = &services.Service{
			ID:        svcID.Int64,
			Name:      svcName.String,
			Period:    int(svcPeriod.Int32),
			MaxDays:   int(svcMaxDays.Int32),
			Price:     svcPrice.Float64,
			Active:    svcActive.Bool,
			CreatedAt: svcCreated.Time,
			UpdatedAt: svcUpdated.Time,
		}
	}
	return &m, nil
}

// GetWithService возвращает члена клуба вместе с его абонементом (LEFT JOIN).
// nil, nil — если не найден.
func (r *Repo) GetWithService(ctx context.Context, id int64) (*Member, error) {
	const q = `
		SELECT ` + memberCols + `
		FROM members m
		LEFT JOIN services s ON s.id = m.service_id
		WHERE m.id = $1`
	m, err := scanMember(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *Repo) ListByStatuses(ctx context.Context, statuses ...Status) ([]Member, error) {
	const q = `
		SELECT ` + memberCols + `
		FROM members m
		LEFT JOIN services s ON s.id = m.service_id
		WHERE m.status = ANY($1)
		ORDER BY m.id`
	ss := make([]string, 0, len(statuses))
	for _, st := range statuses {
		ss = append(ss, string(st))
	}
	rows, err := r.db.Query(ctx, q, ss)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) error {
	const q = `UPDATE members SET status=$2, updated_at=NOW() WHERE id=$1`
	_, err := r.db.Exec(ctx, q, id, status)
	return err
}

// ApplyCheckin фиксирует успешное посещение: +1 к счётчику и новый countdown.
func (r *Repo) ApplyCheckin(ctx context.Context, id int64, daysLeft int) (*Member, error) {
	const q = `
		WITH upd AS (
			UPDATE members
			SET total_attendance = total_attendance + 1,
			    days_left = $2,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + memberCols + `
		FROM upd m
		LEFT JOIN services s ON s.id = m.service_id`
	return scanMember(r.db.QueryRow(ctx, q, id, daysLeft))
}

// UpdateCountdown используется ежедневным пересчётом: статус и days_left одним UPDATE.
func (r *Repo) UpdateCountdown(ctx context.Context, id int64, daysLeft int, status Status) error {
	const q = `UPDATE members SET days_left=$2, status=$3, updated_at=NOW() WHERE id=$1`
	_, err := r.db.Exec(ctx, q, id, daysLeft, status)
	return err
}

func (r *Repo) Create(ctx context.Context, m Member) (int64, error) {
	const q = `
		INSERT INTO members (full_name, phone, service_id, status, start_date, pre_freeze_attendance)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, q, m.FullName, m.Phone, m.ServiceID, m.Status, m.StartDate, m.PreFreezeAttendance).Scan(&id)
	return id, err
}
