package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/shelf/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 5s)")
	countsStore := flag.Int64("counts", 0, "print product counts of a store id and exit")
	logLines := flag.Int("log", 0, "print the last N lines of the client log and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if n := *logLines; n > 0 {
		if err := app.PrintLog(*configPath, n, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
			return 1
		}
		return 0
	}

	if id := *countsStore; id > 0 {
		if err := app.PrintCounts(ctx, *configPath, id, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
			return 1
		}
		return 0
	}

	opts := app.Options{ConfigPath: *configPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
		return 1
	}
	return 0
}
