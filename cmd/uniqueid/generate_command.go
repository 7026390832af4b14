package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/unique-id/internal/application/identifier"
)

func newGenerateCommand() *cobra.Command {
	var in app.GenerateIdentifierInput

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the identifier for a single person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.NewGenerateIdentifier().Execute(cmd.Context(), in)
			if err != nil {
				if errors.Is(err, app.ErrMissingRequiredField) {
					return errors.New("--first-name and --last-name are required")
				}
				return err
			}

			rows := make([][]string, 0, len(out.Summary))
			for _, entry := range out.Summary {
				rows = append(rows, []string{entry.Label, entry.Value})
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Unique ID: %s\n", out.UniqueID)
			fmt.Fprintln(stdout, renderTable(stdout, []string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.FirstName, "first-name", "", "First name")
	flags.StringVar(&in.MiddleName, "middle-name", "", "Middle name")
	flags.StringVar(&in.LastName, "last-name", "", "Last name")
	flags.StringVar(&in.Kendra, "kendra", "", "Kendra")
	flags.StringVar(&in.Zone, "zone", "", "Zone")
	flags.StringVar(&in.Phone, "phone", "", "Phone number")
	flags.StringVar(&in.Email, "email", "", "Email address")

	return cmd
}
