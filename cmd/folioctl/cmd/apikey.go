package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"folio/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	apiKeyName        string
	apiKeyPermissions []string
)

var apiKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage read-only API keys",
	Long: `Create, list and revoke API keys for external consumers.

API keys only read published projects and skills. Private individual
projects are never visible to them.

Examples:
  folioctl apikey create --name website
  folioctl apikey create --name cv --permission read:skills
  folioctl apikey revoke 6f1c3e0a-1b7e-4c5d-9b9a-2f2b0c3e4d5f`,
}

var apiKeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range apiKeyPermissions {
			if !validPermission(p) {
				return fmt.Errorf("unknown permission %q", p)
			}
		}

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		key, err := db.CreateAPIKey(cmd.Context(), apiKeyName, apiKeyPermissions)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", key.ID)
		fmt.Fprintf(out, "Name:        %s\n", key.Name)
		fmt.Fprintf(out, "Permissions: %s\n", strings.Join(key.Permissions, ", "))
		fmt.Fprintf(out, "Key:         %s\n", key.Key)
		fmt.Fprintln(out, "\nStore the key now; it is sent as the X-API-Key header.")
		return nil
	},
}

var apiKeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		keys, err := db.ListAPIKeys(cmd.Context())
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No API keys found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tPERMISSIONS\tLAST USED")
		for _, k := range keys {
			lastUsed := "never"
			if k.LastUsedAt != nil {
				lastUsed = k.LastUsedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
				k.ID, k.Name, k.IsActive, strings.Join(k.Permissions, ","), lastUsed)
		}
		return w.Flush()
	},
}

var apiKeyRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Deactivate an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid key id: %w", err)
		}

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SetAPIKeyActive(cmd.Context(), id, false); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Revoked %s\n", id)
		return nil
	},
}

func validPermission(p string) bool {
	return p == models.PermissionReadProjects || p == models.PermissionReadSkills
}

func init() {
	apiKeyCreateCmd.Flags().StringVar(&apiKeyName, "name", "", "key name (required)")
	apiKeyCreateCmd.Flags().StringSliceVar(&apiKeyPermissions, "permission", nil,
		"permission to grant, repeatable (default read:projects,read:skills)")
	_ = apiKeyCreateCmd.MarkFlagRequired("name")

	apiKeyCmd.AddCommand(apiKeyCreateCmd, apiKeyListCmd, apiKeyRevokeCmd)
	rootCmd.AddCommand(apiKeyCmd)
}
