// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container locates a container engine (docker or podman) and runs
// images through it as stdin/stdout filters. The pandoc conversion backend
// uses it to run pandoc without a host install.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

// Runtime is the engine surface the pandoc converter depends on. Docker and
// podman both satisfy it with the same CLI verbs.
type Runtime interface {
	// Name returns the engine binary name ("docker" or "podman").
	Name() string

	// Available reports whether the engine binary is on PATH and answers
	// an info probe.
	Available() bool

	// ImageExists returns nil when the named image is present locally.
	ImageExists(image string) error

	// Run starts a disposable container from image with the given command
	// arguments, wiring stdin and stdout to the provided streams.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// commandRunner is the seam between engine logic and os/exec, substituted
// in tests.
type commandRunner interface {
	lookPath(file string) (string, error)
	quiet(name string, args ...string) error
	piped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// systemRunner executes real processes.
type systemRunner struct{}

func (systemRunner) lookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (systemRunner) quiet(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (systemRunner) piped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// engine adapts one container binary to the Runtime interface. The run
// flags are identical across engines; only the image-existence subcommand
// differs.
type engine struct {
	bin        string
	imageCheck []string
	run        commandRunner
}

// engines lists the known binaries in detection preference order.
var engines = []engine{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.run.lookPath(e.bin); err != nil {
		return false
	}
	return e.run.quiet(e.bin, "info") == nil
}

func (e *engine) ImageExists(image string) error {
	args := append(append([]string{}, e.imageCheck...), image)
	if err := e.run.quiet(e.bin, args...); err != nil {
		return fmt.Errorf("image %s not present (try: %s pull %s): %w", image, e.bin, image, err)
	}
	return nil
}

func (e *engine) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	argv := append([]string{"run", "--rm", "-i", image}, args...)
	if err := e.run.piped(e.bin, argv, stdin, stdout); err != nil {
		return fmt.Errorf("%s run %s: %w", e.bin, image, err)
	}
	return nil
}

// DetectRuntime returns the first engine whose binary is on PATH and
// answers an info probe, preferring docker over podman.
func DetectRuntime() (Runtime, error) {
	return detect(systemRunner{})
}

func detect(run commandRunner) (Runtime, error) {
	for _, e := range engines {
		e.run = run
		if e.Available() {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("no container engine found: the pandoc converter needs docker or podman on PATH")
}
