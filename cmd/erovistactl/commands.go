package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ktg84478/erovista/internal/domain"
)

func newCapacityCmd(opts *rootOptions) *cobra.Command {
	var key domain.CapacityKey

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Look up the EPA capacity of one pole configuration for every material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			results, err := ds.Table.LookupCapacity(key)
			if err != nil {
				return err
			}
			format, _ := parseOutput(opts.output)
			return encodeCapacity(cmd.OutOrStdout(), format, results)
		},
	}

	cmd.Flags().StringVar(&key.MountType, FlagMountType, "", "mount type")
	cmd.Flags().StringVar(&key.FixtureConfiguration, FlagFixture, "", "fixture configuration")
	cmd.Flags().StringVar(&key.PoleSize, FlagPoleSize, "", "pole size")
	cmd.Flags().Float64Var(&key.PoleHeightFt, FlagPoleHeight, 0, "pole height in feet")
	cmd.Flags().Float64Var(&key.WindSpeedMPH, FlagWindSpeed, 0, "design wind speed in mph")
	for _, f := range []string{FlagMountType, FlagFixture, FlagPoleSize, FlagPoleHeight, FlagWindSpeed} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newSizesCmd(opts *rootOptions) *cobra.Command {
	var q domain.SizeQuery

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "List the pole sizes that carry at least a minimum EPA for every material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			results, err := ds.Table.ResolveSizes(q)
			if err != nil {
				return err
			}
			format, _ := parseOutput(opts.output)
			return encodeSizes(cmd.OutOrStdout(), format, results)
		},
	}

	cmd.Flags().StringVar(&q.MountType, FlagMountType, "", "mount type")
	cmd.Flags().StringVar(&q.FixtureConfiguration, FlagFixture, "", "fixture configuration")
	cmd.Flags().Float64Var(&q.PoleHeightFt, FlagPoleHeight, 0, "pole height in feet")
	cmd.Flags().Float64Var(&q.WindSpeedMPH, FlagWindSpeed, 0, "design wind speed in mph")
	cmd.Flags().Float64Var(&q.MinEPA, FlagMinimumEPA, 0, "minimum required EPA in square feet")
	for _, f := range []string{FlagMountType, FlagFixture, FlagPoleHeight, FlagWindSpeed, FlagMinimumEPA} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newValuesCmd(opts *rootOptions) *cobra.Command {
	var (
		sel          domain.Selection
		height, wind float64
	)

	cmd := &cobra.Command{
		Use:   "values FIELD",
		Short: "List the values a field may take given the selections made so far",
		Long: fmt.Sprintf(`List the values a field may take given the selections made so far.

Fields are selected in the order %s. Every field before FIELD must be given.`, fieldOrder()),
		Example: strings.TrimSpace(`
erovistactl values mount_type
erovistactl values fixture_configuration --mount-type "Top Mount"
erovistactl values pole_size --mount-type "Top Mount" --fixture-configuration "Single Top Mount" --wind-speed 100 --pole-height 20
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := domain.ParseField(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(FlagPoleHeight) {
				sel.PoleHeightFt = &height
			}
			if cmd.Flags().Changed(FlagWindSpeed) {
				sel.WindSpeedMPH = &wind
			}

			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			values, err := ds.Table.AllowedValues(field, sel)
			if err != nil {
				return err
			}
			format, _ := parseOutput(opts.output)
			return encodeValues(cmd.OutOrStdout(), format, field, values)
		},
	}

	cmd.Flags().StringVar(&sel.MountType, FlagMountType, "", "selected mount type")
	cmd.Flags().StringVar(&sel.FixtureConfiguration, FlagFixture, "", "selected fixture configuration")
	cmd.Flags().Float64Var(&wind, FlagWindSpeed, 0, "selected wind speed in mph")
	cmd.Flags().Float64Var(&height, FlagPoleHeight, 0, "selected pole height in feet")
	cmd.Flags().StringVar(&sel.PoleSize, FlagPoleSize, "", "selected pole size")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load a dataset, check its schema and rows, and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			format, _ := parseOutput(opts.output)
			return encodeSummary(cmd.OutOrStdout(), format, datasetSummary{
				Source: ds.Source,
				Layout: string(ds.Layout),
				Lines:  ds.Lines,
				Stats:  ds.Table.Stats(),
			})
		},
	}
}

func fieldOrder() string {
	names := make([]string, len(domain.FieldOrder))
	for i, f := range domain.FieldOrder {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
