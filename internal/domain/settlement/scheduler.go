package settlement

import (
	"context"
	"time"

	"mess-manager-go/internal/domain/ledger"
	"mess-manager-go/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the monthly settlement sweep. The default spec runs at
// midnight on the first of each month, settling the month that just closed.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	log     logger.Logger
	spec    string
}

func NewScheduler(service *Service, spec string, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		log:     log,
		spec:    spec,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		period := ledger.PeriodOf(time.Now().UTC()).Previous()
		s.service.SettleAll(context.Background(), period)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("settlement scheduler started", "spec", s.spec)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("settlement scheduler stopped")
}
