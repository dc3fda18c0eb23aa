package members

import (
	"time"

	"github.com/Spok95/gym-crm/internal/domain/services"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusFrozen   Status = "frozen"
	StatusDormant  Status = "dormant"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

type Member struct {
	ID                  int64
	FullName            string
	Phone               string
	ServiceID           *int64
	Status              Status
	StartDate           time.Time
	PreFreezeAttendance int
	TotalAttendance     int
	DaysLeft            *int // NULL до первого пересчёта
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// абонемент, подтянутый JOIN-ом; nil, если service_id пуст
	Service *services.Service
}
