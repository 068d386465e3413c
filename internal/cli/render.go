package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"payslip/internal/domain/payslip"
	"payslip/internal/platform/crypto"
	"payslip/internal/platform/email"
	"payslip/internal/platform/jobs"
	"payslip/internal/platform/render"
	"payslip/internal/platform/storage"
)

var errDuplicateOutput = errors.New("duplicate output file")

type renderOpts struct {
	inputs  []string
	outDir  string
	mailTo  string
	noDisk  bool
	workers int
}

func (c *CLI) newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render payslip request files to PDF",
		Long:  "Render reads JSON, YAML or TOML payslip requests, writes each PDF to the output directory and optionally mails it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "request file (.json, .yaml or .toml), repeatable")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "output directory (defaults to OUTPUT_DIR)")
	cmd.Flags().StringVar(&opts.mailTo, "mail-to", "", "also email each payslip to this address")
	cmd.Flags().BoolVar(&opts.noDisk, "no-disk", false, "skip writing files (requires --mail-to)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "payslips rendered concurrently")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	if opts.noDisk && opts.mailTo == "" {
		return errors.New("--no-disk needs --mail-to")
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = c.cfg.OutputDir
	}
	sealer, err := crypto.New(c.cfg.DataEncryptionKey)
	if err != nil {
		return err
	}

	var savers storage.Multi
	if !opts.noDisk {
		savers = append(savers, storage.NewDisk(outDir, sealer))
	}
	if opts.mailTo != "" {
		sender := email.New(c.cfg, c.log)
		if !sender.Enabled() {
			return email.ErrDisabled
		}
		savers = append(savers, email.Saver{Sender: sender, To: opts.mailTo})
	}

	renderer := render.NewPDF()
	svc := payslip.NewService(renderer, c.log, nil)
	results := make([]payslip.Result, len(opts.inputs))
	batch := make([]jobs.Job, len(opts.inputs))
	owners := make(map[string]string, len(opts.inputs))
	for i, input := range opts.inputs {
		i, input := i, input
		req, err := c.readRequest(input)
		if err == nil && !opts.noDisk {
			// Two requests for the same employee and period would race for
			// one file on disk.
			name := payslip.FileName(req.Employee.Name, req.Period.Label, renderer.Extension())
			if first, taken := owners[name]; taken {
				err = fmt.Errorf("%w: %s is already written by %s", errDuplicateOutput, name, first)
			} else {
				owners[name] = input
			}
		}
		batch[i] = jobs.Job{Name: input, Run: func(ctx context.Context) error {
			if err != nil {
				return err
			}
			var genErr error
			results[i], genErr = svc.Generate(ctx, req, savers, nil)
			return genErr
		}}
	}

	out := cmd.OutOrStdout()
	var errs []error
	for i, run := range jobs.NewPool(opts.workers, c.log).Run(cmd.Context(), batch) {
		if run.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", run.Name, run.Err))
			continue
		}
		res := results[i]
		if !opts.noDisk {
			path := filepath.Join(outDir, res.FileName)
			if sealer.Enabled() {
				path += crypto.SealedExt
			}
			fmt.Fprintf(out, "saved %s (%d bytes)\n", path, res.Size)
		}
		if opts.mailTo != "" {
			fmt.Fprintf(out, "mailed %s to %s\n", res.FileName, opts.mailTo)
		}
		if !res.Reconciliation.Matches {
			fmt.Fprintf(out, "warning: %s: net pay %s differs from earnings less deductions %s\n", res.FileName,
				res.Reconciliation.Supplied.StringFixed(2), res.Reconciliation.Expected.StringFixed(2))
		}
	}
	return errors.Join(errs...)
}

func (c *CLI) readRequest(path string) (payslip.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return payslip.Request{}, err
	}
	defer f.Close()
	req, err := payslip.DecodeRequest(f, payslip.FormatFromPath(path))
	if err != nil {
		return payslip.Request{}, err
	}
	return req.WithDefaults(c.cfg.Defaults.Company, c.cfg.Defaults.Payroll), nil
}
