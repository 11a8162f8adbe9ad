package cli

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bouncer/internal/domain"
	"bouncer/internal/service/licensing"
)

func newLicenseCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Manage licenses",
	}

	var (
		clientKey  string
		privateKey string
		expires    string
	)
	issueCmd := &cobra.Command{
		Use:   "issue <assignee>",
		Short: "Issue a new license",
		Long:  "Issue a new Active license. Client and private keys are generated unless provided. Expiration accepts RFC 3339 or a duration from now (e.g. 720h).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := licensing.CreateLicenseRequest{
				ClientKey:  clientKey,
				PrivateKey: privateKey,
				Assignee:   args[0],
			}
			if req.ClientKey == "" {
				req.ClientKey = uuid.NewString()
			}
			if req.PrivateKey == "" {
				req.PrivateKey = uuid.NewString()
			}
			if expires != "" {
				exp, err := parseExpiration(expires)
				if err != nil {
					return err
				}
				req.Expiration = &exp
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			l, err := s.app.Services.License.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(l)
		},
	}
	issueCmd.Flags().StringVar(&clientKey, "client-key", "", "Client key (generated if empty)")
	issueCmd.Flags().StringVar(&privateKey, "private-key", "", "Private key (generated if empty)")
	issueCmd.Flags().StringVar(&expires, "expires", "", "Expiration: RFC 3339 timestamp or duration from now")
	cmd.AddCommand(issueCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a license",
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
			l, err := s.app.Services.License.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(l)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List licenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			licenses, total, err := s.app.Services.License.List(cmd.Context(), domain.PageRequest{})
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"licenses": licenses, "total": total})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an active license",
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
			l, err := s.app.Services.License.Revoke(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(l)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a license and its grants",
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
			return s.app.Services.License.Delete(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "grant <license-id> <feature-id>",
		Short: "Add a feature to a license",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			licenseID, err := strconv.ParseInt(args[0], 10, 64)
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
			link, err := s.app.Services.License.AttachFeature(cmd.Context(), licenseID, featureID)
			if err != nil {
				return err
			}
			return printJSON(link)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ungrant <license-id> <feature-id>",
		Short: "Remove a feature from a license",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			licenseID, err := strconv.ParseInt(args[0], 10, 64)
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
			return s.app.Services.License.DetachFeature(cmd.Context(), licenseID, featureID)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "features <license-id>",
		Short: "List a license's features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			licenseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			s, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			features, err := s.app.Services.License.ListFeatures(cmd.Context(), licenseID)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"features": features})
		},
	})

	return cmd
}

// parseExpiration accepts either an RFC 3339 timestamp or a Go duration
// relative to now.
func parseExpiration(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return time.Time{}, domain.ErrValidation("expiration %q is neither RFC 3339 nor a duration", v)
	}
	return time.Now().UTC().Add(d), nil
}
