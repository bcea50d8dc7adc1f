package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
)

// Scheduler runs the time-driven jobs independently of request traffic. The
// only job today is the daily earnings sweep.
type Scheduler struct {
	cron     *cron.Cron
	earnings *services.EarningService
}

func New(earnings *services.EarningService, sweepSpec string) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{cron: c, earnings: earnings}

	if _, err := c.AddFunc(sweepSpec, s.runEarningsSweep); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runEarningsSweep() {
	count, err := s.earnings.Sweep(context.Background())
	if err != nil {
		log.Println("earnings sweep failed:", err)
		return
	}
	log.Printf("earnings sweep approved %d earnings", count)
}
