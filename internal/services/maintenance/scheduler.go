package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs CleanupComments on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	timeout time.Duration
}

// NewScheduler parses spec (standard five field cron or a descriptor such as
// "@hourly") and registers the cleanup job.
func NewScheduler(service *Service, spec string, timeout time.Duration) (*Scheduler, error) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		service: service,
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.service.CleanupComments(ctx); err != nil {
		log.WithError(err).Error("Scheduled cleanup failed")
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
