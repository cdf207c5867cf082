// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/filings-engine/internal/container"
)

const imagePandoc = "pandoc/core:latest"

// pandocArgs converts HTML on stdin to unwrapped plain text on stdout.
var pandocArgs = []string{"-f", "html", "-t", "plain", "--wrap=none"}

// PandocConverter converts filing documents by piping them through the
// pandoc container image. It depends on a container.Runtime (docker or
// podman) injected at construction time.
type PandocConverter struct {
	runtime container.Runtime
}

// NewPandocConverter creates a converter that uses the given container
// runtime to run the pandoc image. It verifies that the image exists locally
// before returning.
func NewPandocConverter(rt container.Runtime) (*PandocConverter, error) {
	if err := rt.ImageExists(imagePandoc); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &PandocConverter{runtime: rt}, nil
}

// Convert reads the document at docPath, pipes it through the pandoc
// container, and returns the resulting plain text.
func (p *PandocConverter) Convert(docPath string) (string, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return "", fmt.Errorf("opening document %s: %w", docPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(imagePandoc, pandocArgs, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with pandoc: %w", docPath, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("pandoc produced empty output for %s", docPath)
	}

	return collapseWhitespace(out.String()), nil
}
