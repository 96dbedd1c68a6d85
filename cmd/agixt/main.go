// Command agixt is a command-line front end for an AGiXT server. Every client
// operation is available as a subcommand; results are printed to stdout as
// JSON, YAML or plain text, and logs go to stderr.
//
// Configuration comes from the environment (optionally loaded from a .env
// file) and can be overridden with global flags:
//
//	AGIXT_URI=http://localhost:7437 agixt -output yaml agents
//	agixt -key "$TOKEN" chat -conversation demo my-agent "Hello"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/leofalp/agixt-go/core/client"
	"github.com/leofalp/agixt-go/core/client/middleware"
	"github.com/leofalp/agixt-go/providers/observability/slogobs"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := configFromEnv(getenv)
	if err != nil {
		fmt.Fprintf(stderr, "agixt: %v\n", err)
		return exitUsage
	}

	global := flag.NewFlagSet("agixt", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	cfg.bindFlags(global)

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, global)
			return exitOK
		}
		fmt.Fprintf(stderr, "agixt: %v\n", err)
		printUsage(stderr, global)
		return exitUsage
	}
	if err := cfg.afterParse(global); err != nil {
		fmt.Fprintf(stderr, "agixt: %v\n", err)
		return exitUsage
	}

	if global.NArg() == 0 {
		printUsage(stderr, global)
		return exitUsage
	}

	name := global.Arg(0)
	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(stderr, "agixt: unknown command %q\n", name)
		printUsage(stderr, global)
		return exitUsage
	}

	observer := slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(cfg.LogFormat)),
		slogobs.WithLevel(slogobs.ParseLogLevel(cfg.LogLevel)),
		slogobs.WithOutput(stderr),
	)

	c, err := newClient(cfg, observer)
	if err != nil {
		fmt.Fprintf(stderr, "agixt: %v\n", err)
		return exitUsage
	}

	sub := flag.NewFlagSet(name, flag.ContinueOnError)
	sub.SetOutput(stderr)

	result, err := cmd.run(ctx, c, sub, global.Args()[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "agixt: %s: %v\n", name, err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: agixt %s %s\n", cmd.name, cmd.args)
			return exitUsage
		}
		return exitError
	}

	if err := render(stdout, cfg.Output, result); err != nil {
		fmt.Fprintf(stderr, "agixt: %v\n", err)
		return exitError
	}
	return exitOK
}

// newClient builds the client with the middlewares the configuration asks
// for. The timeout is outermost so that it also bounds rate-limit waits.
func newClient(cfg config, observer *slogobs.Observer) (*client.Client, error) {
	opts := []client.Option{
		client.WithObserver(observer),
	}
	if cfg.HasAPIKey {
		opts = append(opts, client.WithAPIKey(cfg.APIKey))
	}

	var middlewares []client.Middleware
	if cfg.Timeout > 0 {
		middlewares = append(middlewares, middleware.NewTimeoutMiddleware(cfg.Timeout))
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, middleware.NewRateLimitMiddleware(cfg.RateLimit, 1))
	}
	middlewares = append(middlewares, middleware.NewLoggingMiddleware(observer.Logger(), middleware.LogLevelStandard))

	opts = append(opts, client.WithMiddleware(middlewares...))
	return client.New(cfg.URI, opts...)
}
