package daemons

import (
	"time"

	"gobank/jobs"
	"gobank/jobs/cron"
	"gobank/store"
)

type Worker interface {
	Start()
	Stop()
}

type CronJob struct {
	Running bool
	Jobs    []jobs.Job
}

func NewCronJob(accounts *store.AccountStore) *CronJob {
	jobs := []jobs.Job{
		&cron.MonthlyAdjustmentJob{Accounts: accounts},
	}

	return &CronJob{Running: true, Jobs: jobs}
}

func (c *CronJob) Stop() {
	c.Running = false
}

func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		go c.Process(job)
	}

	for {
		// Empty for to make it running for ever
		time.Sleep(1 * time.Second)
	}
}

func (c *CronJob) Process(job jobs.Job) {
	for {
		if !c.Running {
			break
		}

		job.Process()
	}
}
