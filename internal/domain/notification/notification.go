package notification

import (
	"time"

	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

var RelatedModels = []string{"Schedule", "Payment", "Attendance", "Child", "Babysitter"}

func ValidType(t models.NotificationType) bool {
	switch t {
	case models.NotificationSchedule, models.NotificationPayment, models.NotificationAttendance,
		models.NotificationMessage, models.NotificationSystem, models.NotificationEmergency,
		models.NotificationReview:
		return true
	}
	return false
}

func ValidPriority(p models.Priority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return true
	}
	return false
}

func ValidStatus(s models.NotificationStatus) bool {
	switch s {
	case models.NotificationUnread, models.NotificationRead, models.NotificationArchived:
		return true
	}
	return false
}

// SetStatus moves a notification to status. Reading stamps ReadAt once;
// going back to Unread clears it.
func SetStatus(n *models.Notification, status models.NotificationStatus, now time.Time) error {
	if !ValidStatus(status) {
		return httperr.ErrInvalid("invalid_status", "Unknown notification status "+string(status))
	}

	switch status {
	case models.NotificationRead, models.NotificationArchived:
		if n.ReadAt == nil {
			n.ReadAt = &now
		}
	case models.NotificationUnread:
		n.ReadAt = nil
	}
	n.Status = status
	return nil
}

// ShouldEmail reports whether a notification warrants an e-mail copy.
func ShouldEmail(n *models.Notification, pref *models.NotificationPreference) bool {
	if n.Priority != models.PriorityHigh && n.Priority != models.PriorityUrgent {
		return false
	}
	if pref == nil {
		return true
	}
	return pref.EmailEnabled && !pref.Muted(n.Type)
}
