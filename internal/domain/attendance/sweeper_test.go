package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/members"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberListerStub struct {
	list        []members.Member
	listErr     error
	gotStatuses []members.Status
	updates     map[int64]SweepResult
	updateErr   map[int64]error
}

func (s *memberListerStub) ListByStatuses(_ context.Context, statuses ...members.Status) ([]members.Member, error) {
	s.gotStatuses = statuses
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func (s *memberListerStub) UpdateCountdown(_ context.Context, id int64, daysLeft int, status members.Status) error {
	if err := s.updateErr[id]; err != nil {
		return err
	}
	if s.updates == nil {
		s.updates = map[int64]SweepResult{}
	}
	s.updates[id] = SweepResult{MemberID: id, DaysLeft: daysLeft, Status: status}
	return nil
}

type counterStub struct {
	counts map[int64]int
	errs   map[int64]error
}

func (s *counterStub) CountSince(_ context.Context, memberID int64, _ time.Time) (int, error) {
	if err := s.errs[memberID]; err != nil {
		return 0, err
	}
	return s.counts[memberID], nil
}

func sweepMember(id int64, status members.Status, startDaysAgo, period, maxDays int, now time.Time) members.Member {
	m := testMember(status, startDaysAgo, period, maxDays, now)
	m.ID = id
	return *m
}

func newTestSweeper(ms *memberListerStub, cs *counterStub, n Notifier) *Sweeper {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSweeper(log, ms, cs, n)
}

func TestSweepQueriesOnlyDecayableStatuses(t *testing.T) {
	ms := &memberListerStub{}
	sw := newTestSweeper(ms, &counterStub{}, nil)

	_, err := sw.Run(context.Background(), date(2026, 5, 10))
	require.NoError(t, err)
	assert.Equal(t, []members.Status{members.StatusActive, members.StatusExpired}, ms.gotStatuses)
}

func TestSweepUpdatesCountdownAndStatus(t *testing.T) {
	now := date(2026, 5, 10)
	ms := &memberListerStub{list: []members.Member{
		sweepMember(1, members.StatusActive, 10, 30, 20, now),  // 20 дней до конца, лимит 15 — остаётся active
		sweepMember(2, members.StatusActive, 91, 90, 50, now),  // календарь -1 — expired
		sweepMember(3, members.StatusActive, 100, 90, 50, now), // календарь -10 — inactive
	}}
	cs := &counterStub{counts: map[int64]int{1: 5, 2: 10, 3: 10}}
	sw := newTestSweeper(ms, cs, nil)

	results, err := sw.Run(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, SweepUpdated, results[0].Outcome)
	assert.Equal(t, 15, results[0].DaysLeft)
	assert.Equal(t, members.StatusActive, results[0].Status)

	assert.Equal(t, -1, results[1].DaysLeft)
	assert.Equal(t, members.StatusExpired, results[1].Status)

	assert.Equal(t, -10, results[2].DaysLeft)
	assert.Equal(t, members.StatusInactive, results[2].Status)

	// days_left пишется даже при неизменном статусе
	assert.Len(t, ms.updates, 3)
}

func TestSweepSkipsMemberWithoutService(t *testing.T) {
	now := date(2026, 5, 10)
	m := sweepMember(7, members.StatusActive, 10, 30, 20, now)
	m.Service = nil
	ms := &memberListerStub{list: []members.Member{m}}
	sw := newTestSweeper(ms, &counterStub{}, nil)

	results, err := sw.Run(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, SweepSkipped, results[0].Outcome)
	assert.Empty(t, ms.updates)
}

// Сбой по одному члену клуба не должен прерывать остальных.
func TestSweepIsolatesFailures(t *testing.T) {
	now := date(2026, 5, 10)
	ms := &memberListerStub{
		list: []members.Member{
			sweepMember(1, members.StatusActive, 10, 30, 20, now),
			sweepMember(2, members.StatusActive, 10, 30, 20, now),
		},
		updateErr: map[int64]error{1: errors.New("connection reset")},
	}
	cs := &counterStub{counts: map[int64]int{1: 1, 2: 2}}
	sw := newTestSweeper(ms, cs, nil)

	results, err := sw.Run(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, SweepFailed, results[0].Outcome)
	assert.Equal(t, SweepUpdated, results[1].Outcome)
}

func TestSweepIdempotentWithinDay(t *testing.T) {
	now := date(2026, 5, 10)
	ms := &memberListerStub{list: []members.Member{
		sweepMember(1, members.StatusActive, 20, 30, 40, now),
	}}
	cs := &counterStub{counts: map[int64]int{1: 8}}
	sw := newTestSweeper(ms, cs, nil)

	first, err := sw.Run(context.Background(), now)
	require.NoError(t, err)
	second, err := sw.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSweepNotifiesOnExpiration(t *testing.T) {
	now := date(2026, 5, 10)
	ms := &memberListerStub{list: []members.Member{
		sweepMember(1, members.StatusActive, 91, 90, 50, now), // переходит в expired
		sweepMember(2, members.StatusExpired, 91, 90, 50, now), // уже expired — без повторного письма
	}}
	cs := &counterStub{counts: map[int64]int{1: 10, 2: 10}}
	n := &notifierStub{}
	sw := newTestSweeper(ms, cs, n)

	_, err := sw.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n.reminders)
}
