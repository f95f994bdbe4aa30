package pipeline

import (
	"context"
	"fmt"
	"time"

	"varanno/api/models"
	"varanno/api/models/constants"
	fileFormat "varanno/api/models/constants/file-format"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/services/intake"
	"varanno/api/services/tools"
	"varanno/api/services/vcf"

	"github.com/pkg/errors"
)

type (
	// Annotator fills in the annotation of every record in place.
	Annotator interface {
		AnnotateRecords(ctx context.Context, records []*models.VariantRecord)
	}

	// ProgressFunc is told about every state the run enters.
	ProgressFunc func(state constants.SessionState)

	Pipeline struct {
		Config    *models.Config
		Aligner   *Aligner
		Caller    *VariantCaller
		Annotator Annotator

		// Preflight checks tool prerequisites before any read file is
		// processed.
		Preflight func(cfg *models.Config) error
	}
)

func NewPipeline(cfg *models.Config, runner tools.Runner, annotator Annotator) *Pipeline {
	return &Pipeline{
		Config:    cfg,
		Aligner:   NewAligner(runner, cfg.Tools.ReferenceGenomePath, cfg.Tools.Threads),
		Caller:    NewVariantCaller(runner, cfg.Tools.ReferenceGenomePath, cfg.Tools.DbsnpPath),
		Annotator: annotator,
		Preflight: tools.Preflight,
	}
}

// Run dispatches on the upload's format: reads go through alignment and
// calling, variant call files are parsed directly.
func (p *Pipeline) Run(ctx context.Context, upload *intake.Upload, workDir string, progress ProgressFunc) ([]*models.VariantRecord, error) {
	switch {
	case fileFormat.IsReads(upload.Format):
		return p.RunReads(ctx, upload.Path, upload.Format, workDir, progress)
	case fileFormat.IsVariantCalls(upload.Format):
		return p.RunVariantCalls(ctx, upload.Path, progress)
	default:
		return nil, errors.Wrapf(intake.ErrUnsupportedFormat, "%s", upload.Format)
	}
}

// RunReads validates, aligns, calls and annotates a read file. Missing
// prerequisites fail before the file is touched; a failing tool halts
// the run and its *tools.ToolError is returned as is.
func (p *Pipeline) RunReads(ctx context.Context, readsPath string, format constants.FileFormat, workDir string, progress ProgressFunc) ([]*models.VariantRecord, error) {
	progress = orNoop(progress)

	if p.Preflight != nil {
		if err := p.Preflight(p.Config); err != nil {
			return nil, err
		}
	}

	progress(sessionState.Intake)
	count, err := intake.ValidateReads(readsPath, format)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[%s] - %s holds %d sequences\n", time.Now(), readsPath, count)

	progress(sessionState.Aligning)
	samPath, err := p.Aligner.Align(ctx, readsPath, workDir)
	if err != nil {
		return nil, err
	}

	progress(sessionState.Calling)
	vcfPath, err := p.Caller.Call(ctx, samPath, workDir)
	if err != nil {
		return nil, err
	}

	return p.RunVariantCalls(ctx, vcfPath, progress)
}

// RunVariantCalls parses and annotates a pre-computed VCF.
func (p *Pipeline) RunVariantCalls(ctx context.Context, vcfPath string, progress ProgressFunc) ([]*models.VariantRecord, error) {
	progress = orNoop(progress)

	progress(sessionState.Intake)
	records, err := vcf.ParseFile(vcfPath)
	if err != nil {
		return nil, err
	}

	progress(sessionState.Annotating)
	start := time.Now()
	if p.Annotator != nil {
		p.Annotator.AnnotateRecords(ctx, records)
	}
	fmt.Printf("[%s] - Annotated %d records in %s\n", time.Now(), len(records), time.Since(start))

	return records, nil
}

func orNoop(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(constants.SessionState) {}
	}
	return progress
}
