package cmd

import (
	"fmt"
	"os"
	"time"

	"folio/auth"

	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Admin session tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue an admin session token",
	Long: `Sign a session token with SESSION_SECRET. Send it as
"Authorization: Bearer <token>" or in the folio_session cookie.

Example:
  folioctl token issue --user admin --email admin@example.com --ttl 1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("SESSION_SECRET")
		if len(secret) < auth.MinSecretLength {
			return fmt.Errorf("SESSION_SECRET must be at least %d bytes", auth.MinSecretLength)
		}
		if tokenTTL <= 0 {
			return fmt.Errorf("--ttl must be positive")
		}

		token, err := auth.NewSessionService([]byte(secret), tokenTTL).Issue(tokenUser, tokenEmail)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenUser, "user", "", "user id (required)")
	tokenIssueCmd.Flags().StringVar(&tokenEmail, "email", "", "user email")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenIssueCmd.MarkFlagRequired("user")

	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}
