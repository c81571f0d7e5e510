// Command feedctl is the maintenance CLI for tuirss subscriptions and
// rendering.
//
// Usage:
//
//	feedctl                       Show help
//	feedctl list                  List subscribed feeds
//	feedctl add <url>             Validate and subscribe to a feed
//	feedctl remove <id>           Unsubscribe
//	feedctl favorites             List saved articles
//	feedctl check                 Fetch every feed and report item counts
//	feedctl render <url>          Print the extracted rendering of a webpage
//	feedctl summary <url> [n]     Print the summary rendering of a feed item
package main

import (
	"fmt"
	"os"
)

const usage = `feedctl - tuirss feed maintenance CLI

Usage:
  feedctl <command> [flags]

Commands:
  list        List subscribed feeds
  add         Validate a feed URL and subscribe to it
  remove      Unsubscribe from a feed by id
  favorites   List saved articles
  check       Fetch every subscribed feed concurrently and report results
  render      Print the extracted-mode rendering of a webpage
  summary     Print the summary-mode rendering of the n-th item of a feed

Environment:
  TUIRSS_HOME        Data directory (default: ~/.tui-rss)
  TUIRSS_USER_AGENT  User-Agent for HTTP requests
  TUIRSS_LOG_LEVEL   Log level (debug, info, warn, error)

Run 'feedctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "list":
		runList()
	case "add":
		runAdd()
	case "remove":
		runRemove()
	case "favorites":
		runFavorites()
	case "check":
		runCheck()
	case "render":
		runRender()
	case "summary":
		runSummary()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "feedctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
