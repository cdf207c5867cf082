//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract scans converted filing text for EPS figures and stores them as
// observations.
func Extract() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "extract", "--store")
}
