//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Report resolves stored observations and writes the EPS report.
func Report() error {
	mg.Deps(Build)
	if err := sh.RunV(binPath(), "resolve"); err != nil {
		return err
	}
	return sh.RunV(binPath(), "report", "--output", "output/output.csv")
}
