package cli

import (
	"errors"
	"pediacenter/internal/identity"
	"pediacenter/internal/intake"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckIdentityCmd() *cobra.Command {
	var child identity.Child

	c := &cobra.Command{
		Use:   "check-identity",
		Short: "Report which identifying fields are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), identity.CheckChild(child))
		},
	}

	c.Flags().StringVar(&child.FirstName, "first-name", "", "child's first name")
	c.Flags().StringVar(&child.LastName, "last-name", "", "child's last name")
	c.Flags().StringVar(&child.DateOfBirth, "dob", "", "date of birth")
	return c
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract MESSAGE...",
		Short: "Classify a parent's message into visit parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				return errors.New("message is required")
			}
			return printJSON(cmd.OutOrStdout(), intake.Extract(message))
		},
	}
}
