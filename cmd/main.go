package main

import (
	"log"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/config"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/routes"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/services"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push notifications disabled: %v", err)
		push = nil
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(config.DB, hub, push)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
