package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratish444/QuoteVault/internal/buildinfo"
	"github.com/pratish444/QuoteVault/internal/client/app"
	"github.com/pratish444/QuoteVault/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
