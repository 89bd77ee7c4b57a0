// Package main provides the entry point for the europarlscraper CLI.
//
// The scraper walks a European Parliament document archive page by page,
// extracts the cleaned text of every sitting and publishes the result as a
// dataset.
//
// Usage:
//
//	europarlscraper scrape
//	europarlscraper scrape --config config.yaml --no-publish
//
// See --help for all available options.
package main

// main is the entry point for the scraper.
func main() {
	Execute()
}
