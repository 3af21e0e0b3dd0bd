// Command shelfd serves the shelf catalog REST API over sqlite or Postgres.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"github.com/five82/shelf/internal/server"
	"github.com/five82/shelf/internal/storage"
)

const version = "0.1.0"

const usage = `Shelf catalog server.

Usage:
    shelfd [--listen=<addr>] [--driver=<driver>] [--dsn=<dsn>] [--seed] [-v <level>]
    shelfd -h | --help
    shelfd --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --listen=<addr>    Address to serve on [default: :8000].
    --driver=<driver>  Database driver, sqlite or postgres [default: sqlite].
    --dsn=<dsn>        Database location. Defaults to shelf.db for sqlite.
    --seed             Load demo stores into an empty database.
    -v <level>         Log verbosity [default: 0].`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		panic(err)
	}

	// glog reads its settings from the standard flag set.
	_ = flag.Set("logtostderr", "true")
	if level, _ := opts.String("-v"); level != "" {
		if _, err := strconv.Atoi(level); err == nil {
			_ = flag.Set("v", level)
		}
	}
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		glog.Errorf("shelfd: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts docopt.Opts) error {
	listen, _ := opts.String("--listen")
	driver, _ := opts.String("--driver")
	dsn, _ := opts.String("--dsn")
	seed, _ := opts.Bool("--seed")

	repo, err := storage.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			glog.Warningf("close database: %v", err)
		}
	}()

	if seed {
		seeded, err := repo.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if seeded {
			glog.Infof("seeded demo catalog")
		}
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           server.New(repo, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("shelfd listening on %s (%s)", listen, repo.Driver())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	glog.Infof("shutting down")
	return srv.Shutdown(shutdownCtx)
}
