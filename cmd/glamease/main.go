package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/glamease/glamease/config"
	"github.com/glamease/glamease/internal/adminapi"
	"github.com/glamease/glamease/internal/app"
	"github.com/glamease/glamease/internal/webserver"
)

var (
	cfile   = flag.String("c", "", "config file path")
	initdb  = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("glamease", version)
		return
	}

	cfg := config.LoadConfig(*cfile)
	if err := os.MkdirAll(cfg.GetDataDir(), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		return
	}

	webserver.Init(application)
	adminapi.Init()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
		_ = webserver.Shutdown()
	}
}
