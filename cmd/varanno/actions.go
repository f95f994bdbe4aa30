package main

import (
	"fmt"
	"io"
	"os"

	"varanno/api/models"
	"varanno/api/models/constants"
	fileFormat "varanno/api/models/constants/file-format"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/services/annotation"
	exportService "varanno/api/services/export"
	"varanno/api/services/intake"
	"varanno/api/services/pipeline"
	"varanno/api/services/tools"
	variantsService "varanno/api/services/variants"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig()
	if err != nil {
		return nil, err
	}
	if path := cCtx.String("config"); path != "" {
		if err := cfg.OverlayYamlFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newPipeline(cfg *models.Config) *pipeline.Pipeline {
	return pipeline.NewPipeline(cfg, tools.NewExecRunner(cfg), annotation.NewResolverFromConfig(cfg))
}

func annotateAction(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return cli.Exit(err, 2)
	}

	path := cCtx.String("vcf")
	if format := fileFormat.CastFromFilename(path); !fileFormat.IsVariantCalls(format) {
		return cli.Exit(fmt.Sprintf("%s is not a VCF file", path), 1)
	}

	records, err := newPipeline(cfg).RunVariantCalls(cCtx.Context, path, progressPrinter(cCtx.App.ErrWriter))
	if err != nil {
		return cli.Exit(err, 1)
	}

	return finish(cCtx, records)
}

func runAction(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return cli.Exit(err, 2)
	}

	path := cCtx.String("reads")
	format, err := intake.DetectFormat(path)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if !fileFormat.IsReads(format) {
		return cli.Exit(fmt.Sprintf("%s is not a FASTA or FASTQ file", path), 1)
	}

	if err := os.MkdirAll(cfg.Api.WorkDirectory, 0755); err != nil {
		return cli.Exit(err, 2)
	}
	workDir, err := os.MkdirTemp(cfg.Api.WorkDirectory, "run-")
	if err != nil {
		return cli.Exit(err, 2)
	}
	if !cCtx.Bool("keep") {
		defer os.RemoveAll(workDir)
	}

	records, err := newPipeline(cfg).RunReads(cCtx.Context, path, format, workDir, progressPrinter(cCtx.App.ErrWriter))
	if err != nil {
		var toolErr *tools.ToolError
		if errors.As(err, &toolErr) && toolErr.Stderr != "" {
			fmt.Fprintln(cCtx.App.ErrWriter, toolErr.Stderr)
		}
		return cli.Exit(err, 1)
	}

	return finish(cCtx, records)
}

// finish writes the CSV and prints a per-source summary to stderr.
func finish(cCtx *cli.Context, records []*models.VariantRecord) error {
	var err error
	if path := cCtx.String("output"); path != "" {
		err = writeCsvFile(path, records)
	} else {
		err = exportService.WriteCsv(cCtx.App.Writer, records)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	printSummary(cCtx.App.ErrWriter, records)
	return nil
}

// writeCsvFile reports a failed close as well as a failed write.
func writeCsvFile(path string, records []*models.VariantRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}

	if err := exportService.WriteCsv(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}
	return nil
}

func printSummary(w io.Writer, records []*models.VariantRecord) {
	overview := variantsService.GetVariantsOverview(uuid.Nil, records)

	fmt.Fprintf(w, "%d variants, %d annotated\n", overview.VariantCount, overview.AnnotatedCount)
	for _, bucket := range overview.Sources {
		fmt.Fprintf(w, "\t%s : %d\n", bucket.Label, bucket.Count)
	}
}

func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	return func(state constants.SessionState) {
		if state == sessionState.Done {
			return
		}
		fmt.Fprintf(w, "%s..\n", state)
	}
}
