package worker

import (
	"context"
	"time"

	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically expires Sent invitations past their deadline. It
// needs no coordination between instances: the transition is guarded by
// the row's status at commit time, so overlapping sweeps and racing user
// transitions resolve in storage.
type Sweeper struct {
	invitationUC domain.InvitationUsecase
	cron         *cron.Cron
	schedule     string
}

// NewSweeper creates a sweeper on the given cron schedule
// (e.g. "@every 5m").
func NewSweeper(invitationUC domain.InvitationUsecase, schedule string) *Sweeper {
	return &Sweeper{
		invitationUC: invitationUC,
		cron:         cron.New(),
		schedule:     schedule,
	}
}

func (s *Sweeper) Start() error {
	log := logger.With("invitation_sweeper")

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		count, err := s.invitationUC.Sweep(ctx, time.Now())
		if err != nil {
			log.Error("sweep failed", "error", err)
			return
		}
		if count > 0 {
			log.Info("expired invitations", "count", count)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Info("sweeper started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
