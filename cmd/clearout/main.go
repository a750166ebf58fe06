// Package main provides the clearout CLI entrypoint: scan a bio page from
// the terminal with a live progress UI or machine-readable output.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/tui"
)

func main() {
	concurrency := flag.Int("concurrency", 10, "number of concurrent probes")
	rateLimit := flag.Int("rate-limit", 0, "outbound probes per second (0 = unlimited)")
	probeTimeout := flag.Duration("probe-timeout", 10*time.Second, "per-link probe timeout")
	pageTimeout := flag.Duration("page-timeout", 15*time.Second, "bio page fetch timeout")
	userAgent := flag.String("user-agent", scanner.DefaultUserAgent, "user agent string")
	respectRobots := flag.Bool("robots", false, "honor robots.txt for the page fetch")
	format := flag.String("format", "tui", "output format: tui, text, json, csv, html")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: clearout [flags] <page-url>")
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	pageURL := flag.Arg(0)

	cfg := scanner.Config{
		Concurrency:      *concurrency,
		PageFetchTimeout: *pageTimeout,
		ProbeTimeout:     *probeTimeout,
		RateLimit:        *rateLimit,
		UserAgent:        *userAgent,
		RespectRobots:    *respectRobots,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *format == "tui" {
		runTUI(ctx, cancel, cfg, pageURL)
		return
	}

	res, err := scanner.New(cfg, nil).Scan(ctx, pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "text":
		result.PrintSummary(os.Stdout, res)
	case "json":
		err = result.WriteJSON(os.Stdout, res)
	case "csv":
		err = result.WriteCSV(os.Stdout, res.Links)
	case "html":
		err = result.WriteHTML(os.Stdout, res)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if res.BrokenLinks > 0 {
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, cancel context.CancelFunc, cfg scanner.Config, pageURL string) {
	progressCh := make(chan scanner.ScanEvent, 100)
	scanInst := scanner.New(cfg, progressCh)

	model := tui.NewModel(ctx, cancel, scanInst, pageURL, progressCh)
	program := tea.NewProgram(model)

	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if finalModel.(tui.Model).HasBrokenLinks() {
		os.Exit(1)
	}
}
