package attendance

import (
	"time"

	"github.com/Spok95/gym-crm/internal/domain/members"
)

// Countdown считает остаток дней абонемента: минимум из календарного остатка
// (до start_date + period) и остатка по лимиту посещений. Может быть отрицательным.
//
// Календарный остаток округляется вверх: начатый день ещё считается днём
// действия абонемента.
func Countdown(startDate time.Time, periodDays, maxDays, attendanceCount, preFreeze int, asOf time.Time) int {
	expiration := Day(startDate).AddDate(0, 0, periodDays)
	untilExpiration := daysBetweenCeil(asOf, expiration)
	byUsage := maxDays - attendanceCount - preFreeze
	if untilExpiration < byUsage {
		return untilExpiration
	}
	return byUsage
}

// daysBetweenCeil — количество суток от a до b, неполные сутки идут за целые.
func daysBetweenCeil(a, b time.Time) int {
	const day = 24 * time.Hour
	d := b.Sub(a)
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}

// InferStatus переводит countdown в рекомендацию по статусу.
// Просрочка до трёх дней — expired (ещё можно продлить), дальше — inactive.
// Пока дни в плюсе, статус не трогаем.
func InferStatus(daysLeft int, current members.Status) members.Status {
	switch {
	case daysLeft <= -3:
		return members.StatusInactive
	case daysLeft <= 0:
		return members.StatusExpired
	default:
		return current
	}
}
