package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/members"
)

const (
	msgMemberNotFound  = "Member not found"
	msgMemberNoService = "Member has no active service, please assign a service before recording attendance"
	msgMemberInactive  = "Member is inactive, please renew the membership"
	msgRecordedExpired = "Attendance recorded but the membership has expired. Please remind the member to renew it"
	msgRecorded        = "Attendance recorded successfully"
)

// MemberStore — операции над членом клуба, нужные для отметки посещения.
type MemberStore interface {
	GetWithService(ctx context.Context, id int64) (*members.Member, error)
	SetStatus(ctx context.Context, id int64, status members.Status) error
	ApplyCheckin(ctx context.Context, id int64, daysLeft int) (*members.Member, error)
}

// Store — хранилище посещений.
type Store interface {
	CountSince(ctx context.Context, memberID int64, since time.Time) (int, error)
	ExistsOn(ctx context.Context, memberID int64, date time.Time) (bool, error)
	Insert(ctx context.Context, memberID int64, date time.Time) error
}

// Notifier шлёт напоминание о продлении абонемента.
type Notifier interface {
	RenewalReminder(ctx context.Context, m *members.Member, daysLeft int)
}

// Result — итог отметки посещения для отдачи наружу.
type Result struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TotalAttendance int    `json:"total_attendance"`
	DaysLeft        int    `json:"days_left"`
}

type Recorder struct {
	log      *slog.Logger
	members  MemberStore
	visits   Store
	notifier Notifier // может быть nil, если телеграм выключен
}

func NewRecorder(log *slog.Logger, ms MemberStore, vs Store, n Notifier) *Recorder {
	return &Recorder{log: log, members: ms, visits: vs, notifier: n}
}

func reject(msg string) Result { return Result{Success: false, Message: msg} }

// Record отмечает посещение за сегодня и пересчитывает countdown.
// Отказы допуска возвращаются как Result без ошибки; error — только сбои хранилища.
func (r *Recorder) Record(ctx context.Context, memberID int64, now time.Time) (Result, error) {
	if memberID <= 0 {
		return Result{}, fmt.Errorf("attendance: member id is required")
	}
	today := Day(now)

	exists, err := r.visits.ExistsOn(ctx, memberID, today)
	if err != nil {
		return Result{}, err
	}

	m, err := r.members.GetWithService(ctx, memberID)
	if err != nil {
		return Result{}, err
	}
	if m == nil {
		return reject(msgMemberNotFound), nil
	}

	if ok, _, msg := CheckEligibility(m.Status, exists); !ok {
		return reject(msg), nil
	}
	if m.Service == nil {
		return reject(msgMemberNoService), nil
	}

	count, err := r.visits.CountSince(ctx, memberID, m.StartDate)
	if err != nil {
		return Result{}, err
	}

	daysLeft := Countdown(m.StartDate, m.Service.Period, m.Service.MaxDays, count, m.PreFreezeAttendance, now)

	switch next := InferStatus(daysLeft, m.Status); next {
	case members.StatusInactive:
		if err := r.members.SetStatus(ctx, memberID, members.StatusInactive); err != nil {
			return Result{}, err
		}
		return reject(msgMemberInactive), nil
	case members.StatusExpired:
		if m.Status != members.StatusExpired {
			if err := r.members.SetStatus(ctx, memberID, members.StatusExpired); err != nil {
				return Result{}, err
			}
			m.Status = members.StatusExpired
		}
	}

	if err := r.visits.Insert(ctx, memberID, today); err != nil {
		if errors.Is(err, ErrDuplicateDay) {
			// проиграли гонку параллельной отметке
			return reject(rejectMessages[ReasonDuplicate]), nil
		}
		return Result{}, err
	}

	// сохраняем countdown уже с учётом сегодняшнего посещения
	after := Countdown(m.StartDate, m.Service.Period, m.Service.MaxDays, count+1, m.PreFreezeAttendance, now)

	// сегодняшняя отметка могла выбрать последний день
	if m.Status != members.StatusExpired && InferStatus(after, m.Status) == members.StatusExpired {
		if err := r.members.SetStatus(ctx, memberID, members.StatusExpired); err != nil {
			return Result{}, err
		}
		m.Status = members.StatusExpired
	}

	updated, err := r.members.ApplyCheckin(ctx, memberID, after)
	if err != nil {
		return Result{}, err
	}

	msg := msgRecorded
	if updated.Status == members.StatusExpired {
		msg = msgRecordedExpired
		if r.notifier != nil {
			r.notifier.RenewalReminder(ctx, updated, after)
		}
	}

	r.log.Info("attendance recorded",
		"member_id", memberID,
		"days_left", after,
		"total", updated.TotalAttendance,
		"status", updated.Status,
	)

	return Result{
		Success:         true,
		Message:         msg,
		TotalAttendance: updated.TotalAttendance,
		DaysLeft:        after,
	}, nil
}
