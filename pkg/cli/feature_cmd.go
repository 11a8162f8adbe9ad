package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"bouncer/internal/domain"
)

func newFeatureCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage features",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			f, err := s.app.Services.Feature.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(f)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			features, total, err := s.app.Services.Feature.List(cmd.Context(), domain.PageRequest{})
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"features": features, "total": total})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a feature from every bundle and license",
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
			return s.app.Services.Feature.Delete(cmd.Context(), id)
		},
	})

	return cmd
}
