package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/builder-service/internal/app"
	"github.com/jsamuelsen/builder-service/internal/domain"
)

func newPhoneCmd(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	names := make([]string, len(domain.PhonePresets))
	for i, p := range domain.PhonePresets {
		names[i] = string(p)
	}

	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Assemble a phone from a preset and print its manual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			preset, _ := cmd.Flags().GetString("preset")

			svc := app.NewPhoneService(app.PhoneServiceConfig{Logger: newLogger(cmd)})

			assembly, err := svc.Assemble(cmd.Context(), preset)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), assembly.Manual.Describe())

			return nil
		},
	}

	cmd.Flags().String("preset", "", "phone preset: "+strings.Join(names, ", "))
	_ = cmd.MarkFlagRequired("preset")

	return cmd
}
