package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"gobank/config"
	"gobank/store"
)

// MonthlyAdjustmentJob applies the monthly fee/interest rule to every active
// account. The scheduler fires daily at the configured time; the adjustment
// itself only runs on the first day of the month.
type MonthlyAdjustmentJob struct {
	Accounts *store.AccountStore
}

func (j *MonthlyAdjustmentJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At(config.App.Daemon.AdjustmentAt).Do(j.tick)
	<-s.Start()
}

func (j *MonthlyAdjustmentJob) tick() {
	if time.Now().Day() != 1 {
		return
	}
	j.Run()
}

// Run walks every account on file and applies the adjustment to the active
// ones. Closed accounts are skipped, and a failure on one account is logged
// without stopping the sweep.
func (j *MonthlyAdjustmentJob) Run() {
	accounts, err := j.Accounts.All()
	if err != nil {
		config.Logger.Errorf("Monthly adjustment: failed to load accounts: %v", err)
		return
	}

	adjusted := 0
	for _, account := range accounts {
		if !account.Active {
			continue
		}
		if err := account.MonthlyAdjust(); err != nil {
			config.Logger.Errorf("Monthly adjustment failed for account %d: %v", account.Number, err)
			continue
		}
		if _, err := j.Accounts.Update(account); err != nil {
			config.Logger.Errorf("Failed to persist adjustment for account %d: %v", account.Number, err)
			continue
		}
		adjusted++
	}

	config.Logger.Infof("Monthly adjustment applied to %d accounts", adjusted)
}
