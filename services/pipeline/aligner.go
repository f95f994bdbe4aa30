package pipeline

import (
	"context"
	"path/filepath"
	"strconv"

	"varanno/api/services/tools"
)

const alignmentFilename = "aligned.sam"

// Aligner maps reads against the reference genome with bwa mem.
type Aligner struct {
	runner    tools.Runner
	reference string
	threads   int
}

func NewAligner(runner tools.Runner, reference string, threads int) *Aligner {
	return &Aligner{
		runner:    runner,
		reference: reference,
		threads:   threads,
	}
}

// Align writes a SAM file into workDir and returns its path.
func (a *Aligner) Align(ctx context.Context, readsPath string, workDir string) (string, error) {
	samPath := filepath.Join(workDir, alignmentFilename)

	args := []string{"mem"}
	if a.threads > 1 {
		args = append(args, "-t", strconv.Itoa(a.threads))
	}
	args = append(args, a.reference, readsPath)

	err := a.runner.Run(ctx, tools.Invocation{
		Tool:       tools.Bwa,
		Args:       args,
		StdoutPath: samPath,
	})
	if err != nil {
		return "", err
	}
	return samPath, nil
}
