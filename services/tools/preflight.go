package tools

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"varanno/api/models"
)

// PreflightError lists every missing prerequisite found by Preflight.
type PreflightError struct {
	Problems []string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("pipeline prerequisites missing: %s", strings.Join(e.Problems, "; "))
}

// Preflight verifies that the alignment and calling tools, the reference
// genome and its bwa index are all present before any input is touched.
func Preflight(cfg *models.Config) error {
	var problems []string

	runner := NewExecRunner(cfg)
	for _, tool := range []string{Bwa, Samtools, Bcftools} {
		if _, err := exec.LookPath(runner.Executable(tool)); err != nil {
			problems = append(problems, fmt.Sprintf("%s not found (%s)", tool, runner.Executable(tool)))
		}
	}

	reference := strings.TrimSpace(cfg.Tools.ReferenceGenomePath)
	if reference == "" {
		problems = append(problems, "no reference genome configured")
	} else {
		if !isFile(reference) {
			problems = append(problems, fmt.Sprintf("reference genome %s not found", reference))
		}
		if !isFile(reference + ".bwt") {
			problems = append(problems, fmt.Sprintf("bwa index %s.bwt not found", reference))
		}
	}

	if dbsnp := strings.TrimSpace(cfg.Tools.DbsnpPath); dbsnp != "" && !isFile(dbsnp) {
		problems = append(problems, fmt.Sprintf("dbSNP file %s not found", dbsnp))
	}

	if len(problems) > 0 {
		return &PreflightError{Problems: problems}
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
