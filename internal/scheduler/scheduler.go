package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the batch job on a cron schedule for daemon deployments.
type Scheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
}

func New(spec string, job func()) (*Scheduler, error) {
	c := cron.New()
	id, err := c.AddFunc(spec, job)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c, entryID: id}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// NextRun reports when the job fires next; only meaningful after Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
