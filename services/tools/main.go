package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"varanno/api/models"

	"github.com/pkg/errors"
)

const (
	Bwa      = "bwa"
	Samtools = "samtools"
	Bcftools = "bcftools"
)

// bytes of stderr kept on a ToolError
const maxStderrBytes = 64 << 10

type (
	// Invocation is one external tool invocation. When StdoutPath is set the
	// tool's standard output is written to that file.
	Invocation struct {
		Tool       string
		Args       []string
		StdoutPath string
	}

	// Runner executes steps. Implementations must return a *ToolError
	// whenever the tool ran and exited non-zero.
	Runner interface {
		Run(ctx context.Context, inv Invocation) error
	}

	ToolError struct {
		Tool     string
		Args     []string
		ExitCode int
		Stderr   string
	}

	ExecRunner struct {
		paths map[string]string
	}
)

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
}

func NewExecRunner(cfg *models.Config) *ExecRunner {
	return &ExecRunner{
		paths: map[string]string{
			Bwa:      cfg.Tools.BwaPath,
			Samtools: cfg.Tools.SamtoolsPath,
			Bcftools: cfg.Tools.BcftoolsPath,
		},
	}
}

// Executable returns the configured path of tool, falling back to its name.
func (r *ExecRunner) Executable(tool string) string {
	if path := strings.TrimSpace(r.paths[tool]); path != "" {
		return path
	}
	return tool
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, r.Executable(inv.Tool), inv.Args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if inv.StdoutPath != "" {
		out, err := os.Create(inv.StdoutPath)
		if err != nil {
			return errors.Wrapf(err, "creating %s", inv.StdoutPath)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	fmt.Printf("[%s] - Running %s %s\n", time.Now(), inv.Tool, strings.Join(inv.Args, " "))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{
			Tool:     inv.Tool,
			Args:     inv.Args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   truncate(stderr.String(), maxStderrBytes),
		}
	}
	return errors.Wrapf(err, "starting %s", inv.Tool)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[len(text)-limit:]
}
