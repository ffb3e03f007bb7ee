package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dom/deadlock-hub/internal/audit"
	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	assetBase := "https://assets.deadlock-api.com/images"
	if env := os.Getenv("ASSET_BASE_URL"); env != "" {
		assetBase = env
	}
	apiURL := "http://localhost:3000"
	if env := os.Getenv("API_URL"); env != "" {
		apiURL = env
	}

	cat, err := catalog.New(assetBase)
	if err != nil {
		fmt.Printf("Catalog is invalid: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "dups":
		dupsCmd(cat)
	case "images":
		imagesCmd(cat, args)
	case "wiki":
		wikiCmd(cat, args)
	case "verify":
		verifyCmd(cat, apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Item audit - checks the item table against images, the wiki and a live server

USAGE:
  itemaudit <command> [options]

COMMANDS:
  dups      List display names shared by more than one item id
  images    Print every item image URL (--probe to HEAD-check them)
  wiki      Compare the wiki item list with the table
  verify    Resolve a player's recent matches through a running server
  help      Show this help message

ENVIRONMENT:
  ASSET_BASE_URL   Image CDN base (default: https://assets.deadlock-api.com/images)
  API_URL          Server URL for verify (default: http://localhost:3000)

EXAMPLES:
  itemaudit images --probe --concurrency=16
  itemaudit wiki --url=https://deadlock.wiki/Item
  itemaudit verify --steam-id=76561197960287930`)
}

func dupsCmd(cat *catalog.Catalog) {
	dups := audit.Duplicates(cat)
	if len(dups) == 0 {
		fmt.Println("No duplicate names")
		return
	}
	fmt.Printf("%d names are shared by several ids (the lowest id owns the image):\n", len(dups))
	for _, d := range dups {
		fmt.Printf("  %-28s %v\n", d.Name, d.IDs)
	}
}

func imagesCmd(cat *catalog.Catalog, args []string) {
	fs := flag.NewFlagSet("images", flag.ExitOnError)
	probe := fs.Bool("probe", false, "HEAD-check every image URL")
	concurrency := fs.Int("concurrency", 8, "Parallel requests when probing")
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall probe timeout")
	fs.Parse(args)

	if !*probe {
		for _, it := range cat.Items(catalog.ItemFilter{}) {
			fmt.Printf("%-12d %-28s %s\n", it.ID, it.Name, cat.ItemImageURL(it))
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Print("Probing item images... ")
	results, err := audit.ProbeImages(ctx, nil, cat, *concurrency)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	failed := 0
	for _, res := range results {
		if res.OK() {
			continue
		}
		failed++
		if res.Err != nil {
			fmt.Printf("  %-28s %s (%v)\n", res.Item.Name, res.URL, res.Err)
		} else {
			fmt.Printf("  %-28s %s (HTTP %d)\n", res.Item.Name, res.URL, res.Status)
		}
	}
	fmt.Printf("%d/%d images reachable\n", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

func wikiCmd(cat *catalog.Catalog, args []string) {
	fs := flag.NewFlagSet("wiki", flag.ExitOnError)
	url := fs.String("url", "", "Wiki page listing the items (required)")
	selector := fs.String("selector", audit.DefaultWikiSelector, "CSS selector for item links")
	fs.Parse(args)

	if *url == "" {
		fmt.Println("Error: --url is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := audit.FetchWikiNames(ctx, nil, *url, *selector)
	if err != nil {
		fmt.Printf("Failed to scrape %s: %v\n", *url, err)
		os.Exit(1)
	}

	missing := audit.MissingNames(cat, names)
	fmt.Printf("Wiki lists %d items, %d missing from the table\n", len(names), len(missing))
	for _, n := range missing {
		fmt.Printf("  %s\n", n)
	}
}

func verifyCmd(cat *catalog.Catalog, apiURL string, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	steamID := fs.String("steam-id", "", "SteamID64 of the player to check (required)")
	limit := fs.Int("limit", 20, "Matches to fetch")
	fs.Parse(args)

	if *steamID == "" {
		fmt.Println("Error: --steam-id is required")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)
	matches, err := client.RecentMatches(*steamID, *limit)
	if err != nil {
		fmt.Printf("Failed to fetch recent matches: %v\n", err)
		os.Exit(1)
	}

	report := checkMatches(cat, matches)
	fmt.Printf("%d matches, %d items checked\n", len(matches), report.itemsChecked)
	for id, name := range report.unresolvedHeroes {
		fmt.Printf("  unresolved hero %d (%s)\n", id, name)
	}
	for id, name := range report.unresolvedItems {
		fmt.Printf("  unresolved item %d (%s)\n", id, name)
	}
	if len(report.unresolvedHeroes)+len(report.unresolvedItems) > 0 {
		os.Exit(1)
	}
	fmt.Println("Every id resolved")
}
