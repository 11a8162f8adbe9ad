package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"bouncer/internal/domain"
)

func newBundleCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage feature bundles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			b, err := s.app.Services.Bundle.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(b)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			bundles, total, err := s.app.Services.Bundle.List(cmd.Context(), domain.PageRequest{})
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"bundles": bundles, "total": total})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bundle and its feature groupings",
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
			return s.app.Services.Bundle.Delete(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "attach <bundle-id> <feature-id>",
		Short: "Add a feature to a bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			featureID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			link, err := s.app.Services.Bundle.AttachFeature(cmd.Context(), bundleID, featureID)
			if err != nil {
				return err
			}
			return printJSON(link)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "detach <bundle-id> <feature-id>",
		Short: "Remove a feature from a bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			featureID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.app.Services.Bundle.DetachFeature(cmd.Context(), bundleID, featureID)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "features <bundle-id>",
		Short: "List a bundle's features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			features, err := s.app.Services.Bundle.ListFeatures(cmd.Context(), bundleID)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"features": features})
		},
	})

	return cmd
}
