package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/api/handlers"
	"github.com/dealerworks/dealer-engine-api/api/scheduler"
	"github.com/dealerworks/dealer-engine-api/config"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	sched := scheduler.New(a.Registry, a.Store)
	sched.Start(a.Config.AutosaveCron)
	defer sched.Stop()

	zap.S().Infow("dealer-engine-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
