package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/abelbrown/tuirss/internal/logging"
	"github.com/abelbrown/tuirss/internal/render"
)

func runRender() {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	file := fs.Bool("file", false, "Treat the argument as a local HTML file")
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: feedctl render [-file] <url|path>")
		os.Exit(2)
	}

	cfg := loadConfig()
	defer logging.Close()

	var page string
	if *file {
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		page = string(data)
	} else {
		var err error
		page, err = newFetcher(cfg).FetchText(context.Background(), fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch webpage: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(render.Webpage(page))
}

func runSummary() {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "usage: feedctl summary <feed-url> [n]")
		os.Exit(2)
	}
	n := 1
	if fs.NArg() == 2 {
		v, err := strconv.Atoi(fs.Arg(1))
		if err != nil || v < 1 {
			fmt.Fprintf(os.Stderr, "error: n must be a positive integer, got %q\n", fs.Arg(1))
			os.Exit(2)
		}
		n = v
	}

	cfg := loadConfig()
	defer logging.Close()

	f, err := newFetcher(cfg).FetchFeed(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load feed: %v\n", err)
		os.Exit(1)
	}
	if n > len(f.Items) {
		fmt.Fprintf(os.Stderr, "error: feed has %d items\n", len(f.Items))
		os.Exit(1)
	}

	it := f.Items[n-1]
	fmt.Printf("%s\n%s\n\n", it.Title, it.Link)
	fmt.Println(render.Summary(it.Body()))
}
