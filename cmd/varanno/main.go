package main

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	app.Writer = os.Stdout

	// service logs go to stderr so a csv on stdout stays clean
	os.Stdout = os.Stderr

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "varanno",
		Usage:           "Align reads, call variants and annotate them against public variant databases",
		HideHelpCommand: true,
		Version:         "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Configuration file (YAML) overlaid on the environment",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location of the output CSV file, defaults to stdout",
				Category: "Optional",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "annotate",
				Usage: "Annotate a pre-computed VCF file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "vcf",
						Aliases:  []string{"i"},
						Usage:    "The VCF (optionally bgzipped) to annotate",
						Required: true,
					},
				},
				Action: annotateAction,
			},
			{
				Name:  "run",
				Usage: "Run the full pipeline on a FASTA or FASTQ file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "reads",
						Aliases:  []string{"i"},
						Usage:    "The FASTA or FASTQ file holding the reads",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "keep",
						Usage: "Keep the intermediate alignment and call files",
					},
				},
				Action: runAction,
			},
		},
	}
}
