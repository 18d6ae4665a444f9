package schedule

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(s *models.Schedule, to models.ScheduleStatus) error {
	if err := CanTransition(s.Status, to); err != nil {
		return err
	}
	s.Status = to
	return nil
}

func Confirm(s *models.Schedule) error {
	return Transition(s, models.ScheduleConfirmed)
}

func Cancel(s *models.Schedule) error {
	return Transition(s, models.ScheduleCancelled)
}

func Complete(s *models.Schedule) error {
	return Transition(s, models.ScheduleCompleted)
}

// Counterparts returns who must hear about a change made by actorID: the
// other side of the booking, or both sides when an outsider (admin) acted.
func Counterparts(s *models.Schedule, actorID uuid.UUID) []uuid.UUID {
	switch actorID {
	case s.ParentID:
		return []uuid.UUID{s.BabysitterID}
	case s.BabysitterID:
		return []uuid.UUID{s.ParentID}
	default:
		return []uuid.UUID{s.ParentID, s.BabysitterID}
	}
}

// CountByStatus tallies schedules per status, every status present.
func CountByStatus(list []models.Schedule) map[models.ScheduleStatus]int {
	out := map[models.ScheduleStatus]int{
		models.SchedulePending:   0,
		models.ScheduleConfirmed: 0,
		models.ScheduleCancelled: 0,
		models.ScheduleCompleted: 0,
	}
	for _, s := range list {
		out[s.Status]++
	}
	return out
}
