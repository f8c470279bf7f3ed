package main

import (
	"github.com/scribehq/scribe/config"
	"github.com/scribehq/scribe/models"
	"github.com/scribehq/scribe/routes"
	"github.com/scribehq/scribe/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	config.InitDatabase(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{})

	r := routes.SetupRouter()

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
