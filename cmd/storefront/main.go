package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/team2shop/storefront/config"
	"github.com/team2shop/storefront/internal/adminapi"
	"github.com/team2shop/storefront/internal/app"
	"github.com/team2shop/storefront/internal/shopapi"
	"github.com/team2shop/storefront/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	confFile = flag.String("c", "storefront.yml", "config file path")
)

var (
	BuildVersion = "dev"
	BuildTime    = ""
)

func printVersion() {
	fmt.Printf("storefront %s %s\n", BuildVersion, BuildTime)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}
	defer application.Release()

	ws := webserver.Init(application)
	shopapi.InitRouter()
	adminapi.InitRouter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited: %v", err)
	}
}
