package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newEntitlementsCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "entitlements <principal-id>",
		Short: "Resolve the features a principal holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			principalID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			features, err := s.app.Services.Entitlement.Resolve(cmd.Context(), principalID)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"features": features})
		},
	}
}
