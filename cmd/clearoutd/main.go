// Package main provides the clearoutd entrypoint: the HTTP scan service.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	concurrency := flag.Int("concurrency", 10, "number of concurrent probes per scan")
	rateLimit := flag.Int("rate-limit", 0, "outbound probes per second per scan (0 = unlimited)")
	probeTimeout := flag.Duration("probe-timeout", 10*time.Second, "per-link probe timeout")
	pageTimeout := flag.Duration("page-timeout", 15*time.Second, "bio page fetch timeout")
	userAgent := flag.String("user-agent", scanner.DefaultUserAgent, "user agent string")
	respectRobots := flag.Bool("robots", false, "honor robots.txt for page fetches")

	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := scanner.Config{
		Concurrency:      *concurrency,
		PageFetchTimeout: *pageTimeout,
		ProbeTimeout:     *probeTimeout,
		RateLimit:        *rateLimit,
		UserAgent:        *userAgent,
		RespectRobots:    *respectRobots,
	}

	srv := server.New(scanner.New(cfg, nil), log)

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithField("addr", *addr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
