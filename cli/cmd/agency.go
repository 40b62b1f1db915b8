package cmd

import (
	"fmt"
	"time"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	currency "github.com/malusev998/currency-agency"
)

func parseAgencyID(id string) (uuid.UUID, error) {
	agencyID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("agency id %q is not valid: %w", id, err)
	}

	return agencyID, nil
}

// parseAt returns nil for an empty timestamp so the latest rate is used.
func parseAt(at string) (*time.Time, error) {
	if at == "" {
		return nil, nil
	}

	t, err := currency.ParseTimestamp(at)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func loadAgency(config *Config, id uuid.UUID) (*currency.Agency, error) {
	var firstErr error

	for _, st := range config.services.Storages {
		agency, err := st.Get(id)
		if err == nil {
			return agency, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		return nil, currency.ErrAgencyNotFound
	}

	return nil, firstErr
}

func create(config *Config) *cobra.Command {
	var name, address, country, base string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agency and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agency, err := currency.NewAgency(name, address, country, base)
			if err != nil {
				return err
			}

			for _, st := range config.services.Storages {
				if err := st.Store(agency); err != nil {
					return err
				}
			}

			_ = level.Info(config.logger).Log("msg", "agency created", "agency", agency.ID(), "base", agency.BaseCurrency())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), agency.ID())

			return err
		},
	}

	createCmd.Flags().StringVar(&name, "name", "", "Agency name")
	createCmd.Flags().StringVar(&address, "address", "", "Agency address")
	createCmd.Flags().StringVar(&country, "country", "", "Agency country")
	createCmd.Flags().StringVar(&base, "base", "", "Base currency of the agency")
	_ = createCmd.MarkFlagRequired("base")

	return createCmd
}

func rates(config *Config) *cobra.Command {
	var agency string

	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "List the rates stored for an agency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agencyID, err := parseAgencyID(agency)
			if err != nil {
				return err
			}

			a, err := loadAgency(config, agencyID)
			if err != nil {
				return err
			}

			for _, r := range a.Rates() {
				_, err := fmt.Fprintf(
					cmd.OutOrStdout(),
					"%s\t%s\t%s\t%s\n",
					r.From(),
					r.To(),
					r.Amount(),
					r.Timestamp().Format(time.RFC3339),
				)

				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	ratesCmd.Flags().StringVar(&agency, "agency", "", "Agency id")
	_ = ratesCmd.MarkFlagRequired("agency")

	return ratesCmd
}
