package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ktg84478/erovista/internal/adapter/dataset"
	"github.com/ktg84478/erovista/internal/observability"
)

const (
	FlagDataset  = "dataset"
	FlagOutput   = "output"
	FlagLogLevel = "log-level"
	FlagTimeout  = "timeout"

	FlagMountType  = "mount-type"
	FlagFixture    = "fixture-configuration"
	FlagPoleSize   = "pole-size"
	FlagPoleHeight = "pole-height"
	FlagWindSpeed  = "wind-speed"
	FlagMinimumEPA = "min-epa"
)

const (
	defaultDataset  = "data/data.csv"
	defaultLogLevel = "warn"
)

type rootOptions struct {
	dataset  string
	output   string
	logLevel string
	timeout  time.Duration
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "erovistactl",
		Short:        "Resolve EroVista pole configurations against a reference dataset",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := parseOutput(opts.output); err != nil {
				return err
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: observability.ParseLevel(opts.logLevel),
			}))
			return nil
		},
		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.dataset, FlagDataset, "d", defaultDataset, "dataset path or http(s) URL")
	cmd.PersistentFlags().StringVarP(&opts.output, FlagOutput, "o", string(outputTable), "output format (table|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, FlagLogLevel, defaultLogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, FlagTimeout, 5*time.Second, "timeout for fetching a remote dataset")

	cmd.AddCommand(
		newCapacityCmd(opts),
		newSizesCmd(opts),
		newValuesCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) (*dataset.Dataset, error) {
	ds, err := dataset.NewLoader(o.timeout, o.logger).Load(cmd.Context(), o.dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset failed: %w", err)
	}
	return ds, nil
}
