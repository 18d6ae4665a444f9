package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type ChangeStatus struct {
	store  store.Store
	notify *notify.Notifier
	audit  *audit.Dispatcher
}

func NewChangeStatus(
	s store.Store,
	n *notify.Notifier,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		store:  s,
		notify: n,
		audit:  audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actor access.Principal,
	scheduleID uuid.UUID,
	status models.ScheduleStatus,
) (*models.Schedule, error) {

	s, err := uc.store.Schedules().Get(ctx, scheduleID)
	if err != nil {
		return nil, notFoundOr(err, "schedule_not_found", "Schedule not found")
	}

	if !actor.Owns(s.ParentID, s.BabysitterID) {
		return nil, httperr.ErrForbidden("Not authorized to update this schedule")
	}

	from := s.Status
	if err := domain.Transition(s, status); err != nil {
		return nil, err
	}

	if err := uc.store.Schedules().Update(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Record(actor.ID, "schedule_status_changed", "schedule", s.ID, map[string]any{
		"from": from,
		"to":   s.Status,
	})
	notifyParties(ctx, uc.notify, actor.ID, s, "Schedule "+string(s.Status),
		fmt.Sprintf("The schedule starting %s is now %s.", s.StartDate, s.Status))

	return s, nil
}
