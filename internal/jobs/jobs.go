// Package jobs runs the periodic schedule housekeeping.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/timezone"
	uc "github.com/BruksfildServices01/daycare-manager/internal/usecase/schedule"
)

const (
	CompleteSpec = "@hourly"
	ReminderSpec = "0 7 * * *"
)

type Scheduler struct {
	cron      *cron.Cron
	complete  *uc.CompleteFinished
	reminders *uc.Reminders
	now       func() time.Time
}

func New(complete *uc.CompleteFinished, reminders *uc.Reminders) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(timezone.Location())),
		complete:  complete,
		reminders: reminders,
		now:       timezone.Now,
	}
}

// Start registers the jobs and starts the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(CompleteSpec, func() { s.CompleteFinished(context.Background()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(ReminderSpec, func() { s.SendReminders(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("cron scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) CompleteFinished(ctx context.Context) int {
	n, err := s.complete.Execute(ctx, models.DateOf(s.now()))
	if err != nil {
		log.Error().Err(err).Msg("complete finished schedules")
		return 0
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("schedules completed")
	}
	return n
}

// SendReminders notifies about confirmed schedules starting tomorrow.
func (s *Scheduler) SendReminders(ctx context.Context) int {
	tomorrow := models.DateOf(s.now().AddDate(0, 0, 1))
	n, err := s.reminders.Execute(ctx, tomorrow)
	if err != nil {
		log.Error().Err(err).Msg("send schedule reminders")
		return 0
	}
	log.Info().Int("count", n).Str("day", tomorrow.String()).Msg("schedule reminders sent")
	return n
}
