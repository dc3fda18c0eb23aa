package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/members"
)

// MemberLister — операции над членами клуба для массового пересчёта.
type MemberLister interface {
	ListByStatuses(ctx context.Context, statuses ...members.Status) ([]members.Member, error)
	UpdateCountdown(ctx context.Context, id int64, daysLeft int, status members.Status) error
}

// Counter — подсчёт посещений с даты старта.
type Counter interface {
	CountSince(ctx context.Context, memberID int64, since time.Time) (int, error)
}

type SweepOutcome string

const (
	SweepUpdated SweepOutcome = "updated"
	SweepSkipped SweepOutcome = "skipped"
	SweepFailed  SweepOutcome = "failed"
)

// SweepResult — итог пересчёта одного члена клуба.
type SweepResult struct {
	MemberID int64
	Outcome  SweepOutcome
	DaysLeft int
	Status   members.Status
	Reason   string
}

type Sweeper struct {
	log      *slog.Logger
	members  MemberLister
	visits   Counter
	notifier Notifier // может быть nil
}

func NewSweeper(log *slog.Logger, ms MemberLister, vs Counter, n Notifier) *Sweeper {
	return &Sweeper{log: log, members: ms, visits: vs, notifier: n}
}

// Run пересчитывает countdown и статус для всех active/expired членов клуба.
// Остальные статусы не трогаем: pending/frozen/dormant ждут действий админа,
// inactive — продления. Ошибка по одному члену не прерывает остальных.
// Повторный запуск в тот же день даёт тот же результат.
func (s *Sweeper) Run(ctx context.Context, now time.Time) ([]SweepResult, error) {
	s.log.Info("membership sweep started")

	list, err := s.members.ListByStatuses(ctx, members.StatusActive, members.StatusExpired)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(list))
	for i := range list {
		m := &list[i]
		res := s.sweepOne(ctx, m, now)
		results = append(results, res)

		switch res.Outcome {
		case SweepUpdated:
			s.log.Info("member countdown updated",
				"member_id", m.ID, "days_left", res.DaysLeft, "status", res.Status)
		case SweepSkipped:
			s.log.Warn("member skipped", "member_id", m.ID, "reason", res.Reason)
		case SweepFailed:
			s.log.Error("member sweep failed", "member_id", m.ID, "err", res.Reason)
		}
	}

	s.log.Info("membership sweep finished", "members", len(results))
	return results, nil
}

func (s *Sweeper) sweepOne(ctx context.Context, m *members.Member, now time.Time) SweepResult {
	if m.Service == nil {
		// битые данные, не повод ронять весь проход
		return SweepResult{MemberID: m.ID, Outcome: SweepSkipped, Reason: "no active service"}
	}

	count, err := s.visits.CountSince(ctx, m.ID, m.StartDate)
	if err != nil {
		return SweepResult{MemberID: m.ID, Outcome: SweepFailed, Reason: err.Error()}
	}

	daysLeft := Countdown(m.StartDate, m.Service.Period, m.Service.MaxDays, count, m.PreFreezeAttendance, now)
	status := InferStatus(daysLeft, m.Status)

	// days_left освежаем каждый день, даже если статус не поменялся
	if err := s.members.UpdateCountdown(ctx, m.ID, daysLeft, status); err != nil {
		return SweepResult{MemberID: m.ID, Outcome: SweepFailed, Reason: err.Error()}
	}

	if status == members.StatusExpired && m.Status != members.StatusExpired && s.notifier != nil {
		m.Status = status
		s.notifier.RenewalReminder(ctx, m, daysLeft)
	}

	return SweepResult{MemberID: m.ID, Outcome: SweepUpdated, DaysLeft: daysLeft, Status: status}
}
