package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/kuteview/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	server := flag.String("server", "", "kutelog server host:port or URL (optional, defaults to 127.0.0.1:9106)")
	retry := flag.Duration("retry", 0, "delay between reconnect attempts (optional, defaults to 1s)")
	plain := flag.Bool("plain", false, "print entries to stdout instead of starting the console UI")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("kuteview", version)
		return 0
	}
	if *retry < 0 {
		fmt.Fprintln(os.Stderr, "kuteview: -retry must not be negative")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Server:     *server,
		RetryDelay: *retry,
		Plain:      *plain,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "kuteview: %v\n", err)
		return 1
	}
	return 0
}
