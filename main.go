package main

import (
	"errors"
	"net/http"

	"miniblog/config"
	"miniblog/models"
	"miniblog/routes"
	"miniblog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg, &models.User{}, &models.Post{})

	cache := utils.NewCache(utils.NewRedis(cfg))

	r := routes.SetupRouter(cfg, db, cache)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	err := utils.GraceServer(":"+cfg.AppPort, r, func() {
		config.CloseDatabase(db)
		_ = utils.Logger.Sync()
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
