package main

// @title           Wellbeing Backend API
// @version         1.0
// @description     Usage entitlement and feather reward API.
// @description     Tracks monthly comic quota, breathing exercise unlocks and premium state per installation,
// @description     and keeps each installation's append-only feather ledger.

// @tag.name         Usage
// @tag.description  Quota checks and usage recording
// @tag.name         Feathers
// @tag.description  Feather ledger reads and awards
// @tag.name         Admin
// @tag.description  Support operations, bearer JWT required

// @securityDefinitions.apikey  AdminBearer
// @in                          header
// @name                        Authorization

// @host      localhost:8888
// @BasePath  /

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/app"
)

func main() {
	// Allow graceful stop with SIGINT/SIGTERM handled by fx
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	a := fx.New(app.Module)
	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		// Logging might not be ready; fallback to zap example
		zap.NewExample().Sugar().Errorf("failed to start app: %v", err)
		exitCode = 1
		return
	}

	// Block until signal
	<-a.Done()

	stopCtx, cancel2 := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancel2()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to stop app: %v", err)
		exitCode = 1
		return
	}
}
