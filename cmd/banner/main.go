package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asshbanner/internal/config"
	"github.com/tomz197/asshbanner/internal/loop"
	"github.com/tomz197/asshbanner/internal/settings"
	"golang.org/x/term"
)

func main() {
	// The session owns the screen, so only warnings reach stderr by default.
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "banner"})
	level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "warn"))
	if err != nil {
		logger.Fatal("invalid LOG_LEVEL", "err", err)
	}
	logger.SetLevel(level)

	seed := settings.Default()
	if path := config.GetEnv("BANNER_SETTINGS", ""); path != "" {
		if seed, err = settings.Load(path); err != nil {
			logger.Fatal("failed to load settings", "path", path, "err", err)
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	s := loop.NewSession(ctx, reader, os.Stdout, loop.Options{
		Settings: &seed,
		Logger:   logger,
	})
	if err := s.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "banner error: %v\n", err)
		os.Exit(1)
	}
}
