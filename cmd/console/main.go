package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/internal/config"
	"github.com/jrsteele09/podmixer-console/server"
	"github.com/jrsteele09/podmixer-console/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running console")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Console stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load(config.GetEnv(config.ConfigFileEnvVar, ""))
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.close()

	manager := session.NewManager(store, session.WithNavigator(func(path string) {
		log.Info().Str("path", path).Msg("session ended, operator must sign in again")
	}))
	defer manager.Close()

	unsubscribe := manager.Subscribe(func(state session.State) {
		log.Info().Bool("logged_in", state.LoggedIn).Str("sub", state.Subject).Msg("session changed")
	})
	defer unsubscribe()

	if state := manager.Restore(ctx); state.LoggedIn {
		log.Info().Str("sub", state.Subject).Time("expires_at", state.ExpiresAt).Msg("Restored session")
	}
	store.watch(ctx, func() { manager.Sync(ctx) })

	client := api.NewClient(c.GetAPIBaseURL(), manager.TokenSource(), c.GetAPITimeout())
	handler, err := server.New(c, manager, client)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.GetLogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Console listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
