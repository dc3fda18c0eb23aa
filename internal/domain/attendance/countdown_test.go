package attendance

import (
	"testing"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/members"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountdown(t *testing.T) {
	start := date(2026, 1, 1)

	tests := []struct {
		name      string
		period    int
		maxDays   int
		count     int
		preFreeze int
		asOf      time.Time
		want      int
	}{
		{
			name:   "calendar bound wins when tighter",
			period: 30, maxDays: 50, count: 5, preFreeze: 0,
			asOf: start.AddDate(0, 0, 20),
			want: 10,
		},
		{
			name:   "usage bound wins when tighter",
			period: 90, maxDays: 10, count: 7, preFreeze: 0,
			asOf: start.AddDate(0, 0, 5),
			want: 3,
		},
		{
			name:   "pre-freeze credit reduces usage remainder",
			period: 90, maxDays: 10, count: 3, preFreeze: 4,
			asOf: start.AddDate(0, 0, 5),
			want: 3,
		},
		{
			name:   "hundred days into a ninety day plan",
			period: 90, maxDays: 50, count: 10, preFreeze: 0,
			asOf: start.AddDate(0, 0, 100),
			want: -10,
		},
		{
			name:   "one usage day left mid period",
			period: 90, maxDays: 50, count: 49, preFreeze: 0,
			asOf: start.AddDate(0, 0, 30),
			want: 1,
		},
		{
			name:   "last usage day consumed",
			period: 90, maxDays: 50, count: 50, preFreeze: 0,
			asOf: start.AddDate(0, 0, 30),
			want: 0,
		},
		{
			name:   "partial day still counts as a full day",
			period: 10, maxDays: 50, count: 0, preFreeze: 0,
			asOf: start.AddDate(0, 0, 9).Add(15 * time.Hour),
			want: 1,
		},
		{
			name:   "expiration midnight exactly",
			period: 10, maxDays: 50, count: 0, preFreeze: 0,
			asOf: start.AddDate(0, 0, 10),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Countdown(start, tt.period, tt.maxDays, tt.count, tt.preFreeze, tt.asOf)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountdownIgnoresTimeOfStartDate(t *testing.T) {
	// start_date из БД может приехать с временем, на расчёт это влиять не должно
	start := time.Date(2026, 3, 10, 13, 45, 0, 0, time.UTC)
	asOf := date(2026, 3, 20)
	got := Countdown(start, 30, 100, 0, 0, asOf)
	assert.Equal(t, 20, got)
}

func TestInferStatus(t *testing.T) {
	tests := []struct {
		daysLeft int
		current  members.Status
		want     members.Status
	}{
		{daysLeft: 5, current: members.StatusActive, want: members.StatusActive},
		{daysLeft: 1, current: members.StatusExpired, want: members.StatusExpired},
		{daysLeft: 0, current: members.StatusActive, want: members.StatusExpired},
		{daysLeft: -1, current: members.StatusActive, want: members.StatusExpired},
		{daysLeft: -2, current: members.StatusExpired, want: members.StatusExpired},
		{daysLeft: -3, current: members.StatusActive, want: members.StatusInactive},
		{daysLeft: -10, current: members.StatusExpired, want: members.StatusInactive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferStatus(tt.daysLeft, tt.current),
			"daysLeft=%d current=%s", tt.daysLeft, tt.current)
	}
}
