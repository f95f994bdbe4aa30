package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"varanno/api/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func shellConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Tools.BwaPath = "sh"
	cfg.Tools.SamtoolsPath = "sh"
	cfg.Tools.BcftoolsPath = "sh"
	return cfg
}

func TestExecRunner(t *testing.T) {
	runner := NewExecRunner(shellConfig())

	t.Run("should capture stderr and exit code of a failing tool", func(t *testing.T) {
		// perform
		err := runner.Run(context.Background(), Invocation{
			Tool: Bwa,
			Args: []string{"-c", "echo '[E::bwa_idx_load] fail to locate the index' >&2; exit 3"},
		})

		// verify
		var toolErr *ToolError
		assert.True(t, errors.As(err, &toolErr))
		assert.Equal(t, Bwa, toolErr.Tool)
		assert.Equal(t, 3, toolErr.ExitCode)
		assert.Contains(t, toolErr.Stderr, "fail to locate the index")
	})

	t.Run("should write stdout to the requested file", func(t *testing.T) {
		// set up
		out := filepath.Join(t.TempDir(), "aligned.sam")

		// perform
		err := runner.Run(context.Background(), Invocation{
			Tool:       Samtools,
			Args:       []string{"-c", "echo '@HD\tVN:1.6'"},
			StdoutPath: out,
		})

		// verify
		assert.Nil(t, err)
		content, readErr := os.ReadFile(out)
		assert.Nil(t, readErr)
		assert.Equal(t, "@HD\tVN:1.6\n", string(content))
	})

	t.Run("should report a missing executable as a plain error", func(t *testing.T) {
		cfg := shellConfig()
		cfg.Tools.BcftoolsPath = "/nonexistent/bcftools"

		err := NewExecRunner(cfg).Run(context.Background(), Invocation{Tool: Bcftools})

		var toolErr *ToolError
		assert.NotNil(t, err)
		assert.False(t, errors.As(err, &toolErr))
	})
}

func TestPreflight(t *testing.T) {
	t.Run("should pass when tools, reference and index exist", func(t *testing.T) {
		// set up
		dir := t.TempDir()
		reference := filepath.Join(dir, "ref.fa")
		assert.Nil(t, os.WriteFile(reference, []byte(">chr1\nACGT\n"), 0644))
		assert.Nil(t, os.WriteFile(reference+".bwt", []byte{0}, 0644))

		cfg := shellConfig()
		cfg.Tools.ReferenceGenomePath = reference

		// perform / verify
		assert.Nil(t, Preflight(cfg))
	})

	t.Run("should list every missing prerequisite", func(t *testing.T) {
		// set up
		cfg := shellConfig()
		cfg.Tools.BwaPath = "definitely-not-an-aligner"
		cfg.Tools.ReferenceGenomePath = filepath.Join(t.TempDir(), "missing.fa")

		// perform
		err := Preflight(cfg)

		// verify
		var preflightErr *PreflightError
		assert.True(t, errors.As(err, &preflightErr))
		assert.Len(t, preflightErr.Problems, 3)
		assert.Contains(t, err.Error(), "bwa not found")
	})
}
