package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amanda-parkwaylabs/task-manager/internal/client/cli"
	"github.com/amanda-parkwaylabs/task-manager/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
