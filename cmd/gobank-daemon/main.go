package main

import (
	"fmt"
	"os"

	"gobank/config"
	"gobank/store"
	"gobank/workers/daemons"
)

func CreateWorker(id string, accounts *store.AccountStore) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob(accounts)
	default:
		return nil
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	accounts := store.NewAccountStore(config.App.Storage.Dir)

	ARVG := os.Args[1:]
	if len(ARVG) == 0 {
		ARVG = []string{"cron_job"}
	}

	for _, id := range ARVG {
		fmt.Println("Start gobank-daemon: " + id)
		worker := CreateWorker(id, accounts)
		if worker == nil {
			config.Logger.Fatalf("Unknown worker: %s", id)
		}

		worker.Start()
	}
}
