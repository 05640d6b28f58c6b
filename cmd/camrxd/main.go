package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"camrx/internal/framing"
	"camrx/internal/logging"
	"camrx/internal/receiver"
	"camrx/internal/serialport"
	"camrx/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to camrxd config (toml)")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := defaultDaemonConfig()
	if *configPath != "" {
		loaded, err := loadDaemonConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "camrxd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "camrxd: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg daemonConfig) error {
	rx := receiver.New(func() (framing.Port, error) {
		return serialport.Open(cfg.Device, cfg.Baud, cfg.ReadTimeout)
	})
	if err := rx.Start(); err != nil {
		return err
	}
	defer rx.Stop()

	log.Info().
		Str("device", cfg.Device).
		Int("baud", cfg.Baud).
		Dur("read_timeout", cfg.ReadTimeout).
		Msg("decoding started")

	srv := server.New("camrxd", rx, cfg.CORSOrigins)
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Router()}
	httpErr := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()
	log.Info().Str("addr", cfg.ListenAddr).Msg("status server listening")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	var fatal error
loop:
	for {
		select {
		case <-ticker.C:
			rec, ok := rx.TakeLatest()
			if !ok {
				continue
			}
			log.Info().
				Uint16("x", rec.X).
				Uint16("y", rec.Y).
				Uint16("w", rec.W).
				Uint16("h", rec.H).
				Uint64("ts", rec.Timestamp).
				Msg("record")

		case sig := <-sigs:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			break loop

		case <-rx.Done():
			fatal = rx.Err()
			break loop

		case err := <-httpErr:
			fatal = fmt.Errorf("status server: %w", err)
			break loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("status server shutdown")
	}

	rx.Stop()
	return fatal
}
