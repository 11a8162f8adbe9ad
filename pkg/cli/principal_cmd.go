package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"bouncer/internal/domain"
)

func newPrincipalCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "principal",
		Short: "Manage principals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <external-id>",
		Short: "Create a principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			p, err := s.app.Services.Principal.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			p, err := s.app.Services.Principal.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List principals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			principals, total, err := s.app.Services.Principal.List(cmd.Context(), domain.PageRequest{})
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"principals": principals, "total": total})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a principal and its license assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.app.Services.Principal.Delete(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "assign <principal-id> <license-id>",
		Short: "Assign a license to a principal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			principalID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			licenseID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			link, err := s.app.Services.Principal.AssignLicense(cmd.Context(), principalID, licenseID)
			if err != nil {
				return err
			}
			return printJSON(link)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unassign <principal-id> <license-id>",
		Short: "Remove a license assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			principalID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			licenseID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.app.Services.Principal.UnassignLicense(cmd.Context(), principalID, licenseID)
		},
	})

	return cmd
}
