package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateDay = errors.New("attendance: already recorded for this day")

type Repo struct{ db *pgxpool.Pool }

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

func (r *Repo) CountSince(ctx context.Context, memberID int64, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM attendance WHERE member_id=$1 AND date >= $2`
	var n int
	if err := r.db.QueryRow(ctx, q, memberID, Day(since)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) ExistsOn(ctx context.Context, memberID int64, date time.Time) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM attendance WHERE member_id=$1 AND date=$2)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, memberID, Day(date)).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Insert пишет посещение за день. UNIQUE(member_id,date) закрывает гонку
// двух одновременных отметок: проигравший получает ErrDuplicateDay.
func (r *Repo) Insert(ctx context.Context, memberID int64, date time.Time) error {
	const q = `
		INSERT INTO attendance (member_id, date)
		VALUES ($1, $2)
		ON CONFLICT (member_id, date) DO NOTHING`
	tag, err := r.db.Exec(ctx, q, memberID, Day(date))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateDay
	}
	return nil
}

// ListRange — журнал посещений за период для выгрузки в Excel.
func (r *Repo) ListRange(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	const q = `
		SELECT a.member_id, m.full_name, m.status, a.date, m.total_attendance, m.days_left
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date, m.full_name`
	rows, err := r.db.Query(ctx, q, Day(from), Day(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var (
			row      ReportRow
			daysLeft sql.NullInt32
		)
		if err := rows.Scan(&row.MemberID, &row.FullName, &row.Status, &row.Date, &row.TotalVisit, &daysLeft); err != nil {
			return nil, err
		}
		if daysLeft.Valid {
			v := int(daysLeft.Int32)
			row.DaysLeft = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
