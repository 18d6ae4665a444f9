package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

// CompleteFinished closes confirmed schedules whose end date has passed.
type CompleteFinished struct {
	store  store.Store
	notify *notify.Notifier
	audit  *audit.Dispatcher
}

func NewCompleteFinished(
	s store.Store,
	n *notify.Notifier,
	audit *audit.Dispatcher,
) *CompleteFinished {
	return &CompleteFinished{
		store:  s,
		notify: n,
		audit:  audit,
	}
}

func (uc *CompleteFinished) Execute(ctx context.Context, today models.Date) (int, error) {
	due, err := uc.store.Schedules().List(ctx, store.ScheduleFilter{
		Status:     models.ScheduleConfirmed,
		EndsBefore: &today,
	})
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range due {
		s := &due[i]
		if err := domain.Complete(s); err != nil {
			continue
		}
		if err := uc.store.Schedules().Update(ctx, s); err != nil {
			log.Error().Err(err).Str("schedule", s.ID.String()).Msg("auto-complete schedule")
			continue
		}
		done++

		uc.audit.Record(uuid.Nil, "schedule_auto_completed", "schedule", s.ID, nil)
		notifyParties(ctx, uc.notify, uuid.Nil, s, "Schedule completed",
			fmt.Sprintf("The schedule that ended %s was marked as completed.", s.EndDate))
	}
	return done, nil
}

// Reminders notifies both parties of confirmed schedules starting on day.
type Reminders struct {
	store  store.Store
	notify *notify.Notifier
}

func NewReminders(s store.Store, n *notify.Notifier) *Reminders {
	return &Reminders{store: s, notify: n}
}

func (uc *Reminders) Execute(ctx context.Context, day models.Date) (int, error) {
	upcoming, err := uc.store.Schedules().List(ctx, store.ScheduleFilter{
		Status:   models.ScheduleConfirmed,
		StartsOn: &day,
	})
	if err != nil {
		return 0, err
	}

	for i := range upcoming {
		s := &upcoming[i]
		notifyParties(ctx, uc.notify, uuid.Nil, s, "Schedule reminder",
			fmt.Sprintf("A schedule at %s starts on %s.", s.Location, s.StartDate))
	}
	return len(upcoming), nil
}
