//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert strips markup from downloaded filing documents and writes plain text.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "convert")
}
