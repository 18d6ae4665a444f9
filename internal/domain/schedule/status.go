package schedule

import (
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

// ===============================
// Schedule Status
// ===============================

var transitions = map[models.ScheduleStatus][]models.ScheduleStatus{
	models.SchedulePending:   {models.ScheduleConfirmed, models.ScheduleCancelled},
	models.ScheduleConfirmed: {models.ScheduleCompleted, models.ScheduleCancelled},
}

func ValidStatus(s models.ScheduleStatus) bool {
	switch s {
	case models.SchedulePending, models.ScheduleConfirmed, models.ScheduleCancelled, models.ScheduleCompleted:
		return true
	}
	return false
}

func ValidPaymentStatus(s models.PaymentStatus) bool {
	switch s {
	case models.PaymentPending, models.PaymentPaid, models.PaymentPartiallyPaid, models.PaymentRefunded:
		return true
	}
	return false
}

func InitialStatus() models.ScheduleStatus {
	return models.SchedulePending
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s models.ScheduleStatus) bool {
	_, ok := transitions[s]
	return !ok
}

// ===============================
// Validations
// ===============================

// CanTransition validates a status change.
func CanTransition(from, to models.ScheduleStatus) error {
	if !ValidStatus(to) {
		return httperr.ErrInvalid("invalid_status", "Unknown schedule status "+string(to))
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrInvalid("invalid_state", "Cannot move schedule from "+string(from)+" to "+string(to))
}

// ValidateRange rejects a schedule that ends before it starts.
func ValidateRange(start, end models.Date) error {
	if start.IsZero() || end.IsZero() {
		return httperr.ErrInvalid("invalid_date_range", "startDate and endDate are required")
	}
	if end.Before(start) {
		return httperr.ErrInvalid("invalid_date_range", "endDate must not be before startDate")
	}
	return nil
}
