//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Index loads converted filing text into the full-text search index.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "store", "index")
}
