package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/govpulse/govpulse/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdExplain() *cli.Command {
	var (
		output  string
		summary bool
		setup   catalogSetup
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file path ('-' for stdout)",
				Value:       "-",
				Destination: &output,
			},
			&cli.BoolFlag{
				Name:        "summary",
				Usage:       "Write service summaries without explanations",
				Destination: &summary,
			},
		},
		setup.flags(),
	)

	return &cli.Command{
		Name:  "explain",
		Usage: "Write the service risk report as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			reportCfg, err := setup.catalog.ReportConfig()
			if err != nil {
				return err
			}

			holder, cleanup, err := setup.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report := usecase.NewReport(holder, reportCfg)

			var result any
			if summary {
				result = report.ListServices(ctx)
			} else {
				result = report.ExplainServices(ctx)
			}

			w, closeFn, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeFn()

			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("output", output))
			}

			ctxlog.From(ctx).Debug("Report written", "output", output)
			return nil
		},
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return f, func() { _ = f.Close() }, nil
}
