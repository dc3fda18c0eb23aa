package attendance

import "github.com/Spok95/gym-crm/internal/domain/members"

type RejectReason string

const (
	ReasonDuplicate RejectReason = "duplicate"
	ReasonFrozen    RejectReason = "frozen"
	ReasonInactive  RejectReason = "inactive"
	ReasonPending   RejectReason = "pending"
	ReasonDormant   RejectReason = "dormant"
)

var rejectMessages = map[RejectReason]string{
	ReasonDuplicate: "Attendance already recorded for today",
	ReasonFrozen:    "Member is on freeze, please unfreeze to record attendance",
	ReasonInactive:  "Member is not active, please renew the membership before recording attendance",
	ReasonPending:   "Member is not approved yet, please approve the membership before recording attendance",
	ReasonDormant:   "Member is dormant, please renew the membership before recording attendance",
}

// CheckEligibility решает, можно ли отметить посещение сегодня.
// Правила проверяются по порядку, срабатывает первое.
func CheckEligibility(status members.Status, alreadyToday bool) (ok bool, reason RejectReason, msg string) {
	switch {
	case alreadyToday:
		reason = ReasonDuplicate
	case status == members.StatusFrozen:
		reason = ReasonFrozen
	case status == members.StatusInactive:
		reason = ReasonInactive
	case status == members.StatusPending:
		reason = ReasonPending
	case status == members.StatusDormant:
		reason = ReasonDormant
	default:
		return true, "", ""
	}
	return false, reason, rejectMessages[reason]
}
