//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Acquire downloads 8-K filings for the watchlist companies and records
// them in the database.
func Acquire() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "acquire", "--watchlist", "watchlist.yaml", "--store")
}
