// Package cli is the payslip command line: the HTTP server plus one-shot
// rendering and incentive commands that share its configuration.
package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"payslip/internal/platform/config"
	"payslip/internal/platform/logging"
)

type CLI struct {
	stderr io.Writer
	log    *logrus.Logger
	cfg    config.Config

	configPath string
	logLevel   string
}

func New(stderr io.Writer) *CLI {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &CLI{stderr: stderr, log: logging.Discard()}
}

func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "payslip",
		Short:         "Render salary slips and compute sales incentives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file with default company and payroll config (overrides PAYSLIP_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newRenderCmd())
	root.AddCommand(c.newIncentiveCmd())
	root.AddCommand(c.newTokenCmd())
	return root
}

func (c *CLI) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.configPath != "" {
		defaults, err := config.LoadDefaults(c.configPath)
		if err != nil {
			return err
		}
		cfg.ConfigFile = c.configPath
		cfg.Defaults = defaults
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logging.New(c.stderr, cfg.LogLevel, cfg.LogFormat)
	return nil
}
