package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rate(config *Config) *cobra.Command {
	var agency, at string

	rateCmd := &cobra.Command{
		Use:   "rate FROM TO",
		Short: "Resolve the rate between two currencies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			agencyID, err := parseAgencyID(agency)
			if err != nil {
				return err
			}

			timestamp, err := parseAt(at)
			if err != nil {
				return err
			}

			r, err := config.services.Rates.GetRate(agencyID, args[0], args[1], timestamp)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Amount())

			return err
		},
	}

	rateCmd.Flags().StringVar(&agency, "agency", "", "Agency id")
	rateCmd.Flags().StringVar(&at, "at", "", "Use only rates stamped at this time")
	_ = rateCmd.MarkFlagRequired("agency")

	return rateCmd
}

func convert(config *Config) *cobra.Command {
	var agency, at string

	convertCmd := &cobra.Command{
		Use:   "convert FROM TO AMOUNT",
		Short: "Convert an amount between two currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			agencyID, err := parseAgencyID(agency)
			if err != nil {
				return err
			}

			timestamp, err := parseAt(at)
			if err != nil {
				return err
			}

			money, err := config.services.Rates.Convert(agencyID, args[0], args[1], args[2], timestamp)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), money)

			return err
		},
	}

	convertCmd.Flags().StringVar(&agency, "agency", "", "Agency id")
	convertCmd.Flags().StringVar(&at, "at", "", "Use only rates stamped at this time")
	_ = convertCmd.MarkFlagRequired("agency")

	return convertCmd
}
