package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/tuirss/internal/coord"
	"github.com/abelbrown/tuirss/internal/logging"
)

func runCheck() {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall deadline for the check")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	defer logging.Close()
	st := openDB(cfg)
	defer st.Close()

	sources, err := st.ListFeedSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	results := coord.NewChecker(newFetcher(cfg), sources).Run(ctx)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("✗ %-30s %v\n", truncate(r.Source.Name, 30), r.Err)
			continue
		}
		fmt.Printf("✓ %-30s %4d items  %6s  %s\n",
			truncate(r.Source.Name, 30), r.Items, r.Elapsed.Round(time.Millisecond), truncate(r.Title, 30))
	}
	fmt.Printf("\n%d feeds, %d failed, %s\n", len(results), failed, time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		os.Exit(1)
	}
}
