package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/logging"
)

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	showURL := fs.Bool("url", true, "Show feed URLs")
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
	if len(sources) == 0 {
		fmt.Println("No feeds. Add one with 'feedctl add <url>'.")
		return
	}
	for _, src := range sources {
		if *showURL {
			fmt.Printf("%-24s %-30s %s\n", src.ID, truncate(src.Name, 30), src.URL)
		} else {
			fmt.Printf("%-24s %s\n", src.ID, src.Name)
		}
	}
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Display name (default: the feed's title)")
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: feedctl add [-name NAME] <url>")
		os.Exit(2)
	}
	url := fs.Arg(0)

	cfg := loadConfig()
	defer logging.Close()
	st := openDB(cfg)
	defer st.Close()

	parsed, err := feed.Validate(context.Background(), newFetcher(cfg), url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	src := feed.FeedSource{
		ID:   feed.GenerateSourceID(url, time.Now()),
		Name: parsed.Title,
		URL:  url,
	}
	if *name != "" {
		src.Name = *name
	}

	added, err := st.AddFeedSource(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if !added {
		fmt.Fprintln(os.Stderr, "Feed already exists")
		os.Exit(1)
	}
	fmt.Printf("Added %s (%s), %d items\n", src.Name, src.ID, len(parsed.Items))
}

func runRemove() {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: feedctl remove <id>")
		os.Exit(2)
	}

	cfg := loadConfig()
	defer logging.Close()
	st := openDB(cfg)
	defer st.Close()

	if err := st.RemoveFeedSource(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", fs.Arg(0))
}

func runFavorites() {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	limit := fs.Int("n", 0, "Show at most n favorites (0 = all)")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	defer logging.Close()
	st := openDB(cfg)
	defer st.Close()

	favs, err := st.ListFavorites()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 && len(favs) > *limit {
		favs = favs[:*limit]
	}

	fmt.Printf("★ %d saved\n", len(favs))
	for _, f := range favs {
		fmt.Printf("  %s  %-60s %s\n", f.SavedAt.Format("2006-01-02"), truncate(f.Title, 60), f.FeedName)
		if f.Link != "" {
			fmt.Printf("              %s\n", f.Link)
		}
	}
}
