package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"varanno/api/services/tools"
)

// VariantCaller turns an alignment into a VCF with samtools and bcftools,
// optionally filling rsids from a dbSNP file.
type VariantCaller struct {
	runner    tools.Runner
	reference string
	dbsnp     string
}

func NewVariantCaller(runner tools.Runner, reference string, dbsnp string) *VariantCaller {
	return &VariantCaller{
		runner:    runner,
		reference: reference,
		dbsnp:     strings.TrimSpace(dbsnp),
	}
}

// Call runs each step in order and stops at the first failing tool.
func (c *VariantCaller) Call(ctx context.Context, samPath string, workDir string) (string, error) {
	var (
		bamPath       = filepath.Join(workDir, "aligned.bam")
		sortedPath    = filepath.Join(workDir, "aligned.sorted.bam")
		pileupPath    = filepath.Join(workDir, "pileup.bcf")
		callsPath     = filepath.Join(workDir, "calls.vcf")
		annotatedPath = filepath.Join(workDir, "calls.rsid.vcf")
	)

	steps := []tools.Invocation{
		{Tool: tools.Samtools, Args: []string{"view", "-bS", samPath, "-o", bamPath}},
		{Tool: tools.Samtools, Args: []string{"sort", bamPath, "-o", sortedPath}},
		{Tool: tools.Samtools, Args: []string{"index", sortedPath}},
		{Tool: tools.Bcftools, Args: []string{"mpileup", "-f", c.reference, sortedPath, "-Ou", "-o", pileupPath}},
		{Tool: tools.Bcftools, Args: []string{"call", "-mv", "-Ov", "-o", callsPath, pileupPath}},
	}
	result := callsPath

	if c.dbsnp != "" {
		steps = append(steps, tools.Invocation{
			Tool: tools.Bcftools,
			Args: []string{"annotate", "-a", c.dbsnp, "-c", "ID", "-Ov", "-o", annotatedPath, callsPath},
		})
		result = annotatedPath
	}

	for _, step := range steps {
		if err := c.runner.Run(ctx, step); err != nil {
			return "", err
		}
	}
	return result, nil
}
