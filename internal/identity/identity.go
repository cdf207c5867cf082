// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity resolves the operator contact address that SEC fair-access
// rules require automated clients to send, and builds the User-Agent header
// from it.
//
// The contact is resolved from, in order: an explicit configuration value,
// the EDGAR_CONTACT environment variable, and the ~/.filings-engine/contact
// file. Requests without a contact are rejected by EDGAR, so resolution
// failure is an error rather than a silent fallback.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envVar is consulted when no explicit contact is configured.
const envVar = "EDGAR_CONTACT"

// contactFile is the per-user fallback, relative to the home directory.
const contactFile = ".filings-engine/contact"

// Resolve returns the operator contact address. An explicit value wins when
// non-empty; otherwise the EDGAR_CONTACT environment variable, then the
// per-user contact file. The error names every place the contact can be set.
func Resolve(explicit string) (string, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, contactFile)); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("no EDGAR contact configured: set contact in the config file, export %s=you@example.com, or write your address to ~/%s", envVar, contactFile)
}

// UserAgent resolves the contact and composes the header EDGAR expects:
// "filings-engine/<version> (<contact>)".
func UserAgent(version, explicit string) (string, error) {
	contact, err := Resolve(explicit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("filings-engine/%s (%s)", version, contact), nil
}
