package schedule

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

// ======================================================
// INPUT
// ======================================================

type CreateScheduleInput struct {
	Actor access.Principal

	ChildIDs     []uuid.UUID
	ParentID     uuid.UUID
	BabysitterID uuid.UUID

	StartDate models.Date
	EndDate   models.Date
	Recurring models.Recurrence
	TimeSlots []models.TimeWindow

	Location            string
	Notes               string
	SpecialInstructions string
	Rate                float64
	PaymentStatus       models.PaymentStatus
}

// ======================================================
// USE CASE
// ======================================================

type CreateSchedule struct {
	store  store.Store
	notify *notify.Notifier
	audit  *audit.Dispatcher
}

func NewCreateSchedule(
	s store.Store,
	n *notify.Notifier,
	audit *audit.Dispatcher,
) *CreateSchedule {
	return &CreateSchedule{
		store:  s,
		notify: n,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books one schedule per child. Every lookup and insert runs in a
// single transaction: either all schedules are created or none.
func (uc *CreateSchedule) Execute(
	ctx context.Context,
	in CreateScheduleInput,
) ([]models.Schedule, error) {

	// --------------------------------------------------
	// Caller defaults
	// --------------------------------------------------
	if in.BabysitterID == uuid.Nil && in.Actor.IsBabysitter() {
		in.BabysitterID = in.Actor.ID
	}
	if in.ParentID == uuid.Nil && in.Actor.IsParent() {
		in.ParentID = in.Actor.ID
	}

	if in.Actor.IsParent() && in.ParentID != in.Actor.ID {
		return nil, httperr.ErrForbidden("Not authorized to create schedules for this parent")
	}
	if in.Actor.IsBabysitter() && in.BabysitterID != in.Actor.ID {
		return nil, httperr.ErrForbidden("Not authorized to create schedules for this babysitter")
	}

	if len(in.ChildIDs) == 0 {
		return nil, httperr.ErrInvalid("child_required", "At least one child is required")
	}
	if err := domain.ValidateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	// --------------------------------------------------
	// Validate + insert atomically
	// --------------------------------------------------
	var created []models.Schedule
	err := uc.store.Tx(ctx, func(tx store.Store) error {
		created = nil

		if _, err := tx.Users().Get(ctx, in.ParentID); err != nil {
			return notFoundOr(err, "parent_not_found", "Parent not found")
		}

		sitter, err := tx.Users().Get(ctx, in.BabysitterID)
		if err != nil {
			return notFoundOr(err, "babysitter_not_found", "Babysitter not found")
		}
		if sitter.Role != models.RoleBabysitter {
			return httperr.ErrInvalid("invalid_babysitter", "User is not a babysitter")
		}

		children := make([]*models.Child, 0, len(in.ChildIDs))
		for _, id := range in.ChildIDs {
			child, err := tx.Children().Get(ctx, id)
			if err != nil {
				return notFoundOr(err, "child_not_found", childrenMessage(len(in.ChildIDs), "Child not found", "One or more children not found"))
			}
			children = append(children, child)
		}
		for _, child := range children {
			if child.ParentID != in.ParentID {
				return httperr.New(http.StatusForbidden, "forbidden",
					childrenMessage(len(children),
						"Child does not belong to the specified parent",
						"One or more children do not belong to the specified parent"))
			}
		}

		for _, child := range children {
			s := models.Schedule{
				ChildID:             child.ID,
				BabysitterID:        in.BabysitterID,
				ParentID:            in.ParentID,
				StartDate:           in.StartDate,
				EndDate:             in.EndDate,
				Recurring:           in.Recurring,
				TimeSlots:           in.TimeSlots,
				Location:            in.Location,
				Status:              domain.InitialStatus(),
				Notes:               in.Notes,
				SpecialInstructions: in.SpecialInstructions,
				Rate:                in.Rate,
				PaymentStatus:       paymentStatus,
			}
			if err := tx.Schedules().Create(ctx, &s); err != nil {
				return err
			}
			created = append(created, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Side effects, after commit
	// --------------------------------------------------
	for i := range created {
		s := &created[i]
		uc.audit.Record(in.Actor.ID, "schedule_created", "schedule", s.ID, map[string]any{
			"childId":      s.ChildID,
			"babysitterId": s.BabysitterID,
			"startDate":    s.StartDate.String(),
		})
		notifyParties(ctx, uc.notify, in.Actor.ID, s, "New schedule request",
			fmt.Sprintf("A schedule from %s to %s is waiting for confirmation.", s.StartDate, s.EndDate))
	}

	return created, nil
}

func notifyParties(ctx context.Context, n *notify.Notifier, actor uuid.UUID, s *models.Schedule, title, msg string) {
	id := s.ID
	var sender *uuid.UUID
	if actor != uuid.Nil {
		sender = &actor
	}
	for _, recipient := range domain.Counterparts(s, actor) {
		n.Send(ctx, notify.Input{
			RecipientID: recipient,
			SenderID:    sender,
			Type:        models.NotificationSchedule,
			Title:       title,
			Message:     msg,
			Related:     models.RelatedTo{Model: "Schedule", ID: &id},
			Priority:    models.PriorityMedium,
			ActionURL:   "/schedule",
			Action:      s.Status == models.SchedulePending,
		})
	}
}

func notFoundOr(err error, code, message string) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}

func childrenMessage(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
