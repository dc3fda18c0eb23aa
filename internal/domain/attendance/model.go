package attendance

import "time"

type Record struct {
	ID        int64
	MemberID  int64
	Date      time.Time // только дата, нормализована к полуночи
	CreatedAt time.Time
}

// ReportRow — строка выгрузки журнала посещений.
type ReportRow struct {
	MemberID   int64
	FullName   string
	Status     string
	Date       time.Time
	TotalVisit int
	DaysLeft   *int
}

// Day обрезает время до полуночи в локации t.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
