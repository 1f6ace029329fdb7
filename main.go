package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/api/handlers"
	"github.com/rayseal/supportapp-api/api/scheduler"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database and router
		log.Fatal(err)
	}

	db := a.Database()
	s := scheduler.NewScheduler(
		databases.NewReportDatabase(db),
		databases.NewFlaggedContentDatabase(db),
		databases.NewProfileDatabase(db),
		databases.NewNotificationDatabase(db),
	)
	s.Start()
	defer s.Stop()

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("supportapp-api is up and running",
		"port", port,
		"url", baseURL,
	)
	handler := api.TimeoutMiddleware(30 * time.Second)(a.Router)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), handler))
}
