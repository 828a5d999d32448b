package cmd

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/ui"
)

// loginOptions holds the login command's flags
type loginOptions struct {
	ID           string
	Username     string
	AvatarFile   string
	AvatarBase64 string
}

var loginOpts loginOptions

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the identity the contact list runs as",
	Long: `Writes the current user to the identity store under the configured storage key.
The contact list reads it on every refresh and stays hidden until the
identity has an avatar, so one of --avatar or --avatar-base64 is required.`,
	Example: `  snappy login --id 64f1c0 --username marvin --avatar ./me.svg
  snappy login --id 64f1c0 --username marvin --avatar-base64 PHN2Zz4=`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runLogin(cfg, loginOpts, cmd.OutOrStdout())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runLogout(cfg, cmd.OutOrStdout())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runWhoami(cfg, cmd.OutOrStdout())
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginOpts.ID, "id", "", "User id (required)")
	loginCmd.Flags().StringVar(&loginOpts.Username, "username", "", "Display name (required)")
	loginCmd.Flags().StringVar(&loginOpts.AvatarFile, "avatar", "", "Avatar image file")
	loginCmd.Flags().StringVar(&loginOpts.AvatarBase64, "avatar-base64", "", "Avatar image as base64")
	_ = loginCmd.MarkFlagRequired("id")
	_ = loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagsMutuallyExclusive("avatar", "avatar-base64")
	loginCmd.MarkFlagsOneRequired("avatar", "avatar-base64")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// avatarData returns the base64 avatar named by the flags, or "" for none.
func (o loginOptions) avatarData() (string, error) {
	switch {
	case o.AvatarFile != "":
		raw, err := os.ReadFile(o.AvatarFile)
		if err != nil {
			return "", fmt.Errorf("error reading avatar: %w", err)
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	case o.AvatarBase64 != "":
		if _, err := ui.DecodeAvatar(o.AvatarBase64); err != nil {
			return "", fmt.Errorf("invalid --avatar-base64: %w", err)
		}
		return o.AvatarBase64, nil
	}
	return "", nil
}

func runLogin(cfg *config.Config, opts loginOptions, out io.Writer) error {
	if opts.ID == "" || opts.Username == "" {
		return fmt.Errorf("--id and --username are required")
	}
	avatar, err := opts.avatarData()
	if err != nil {
		return err
	}
	if avatar == "" {
		return fmt.Errorf("an avatar is required, pass --avatar or --avatar-base64")
	}

	store, identities, err := openIdentities(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	user := contacts.CurrentUser{ID: opts.ID, Username: opts.Username, AvatarImage: avatar}
	if err := identities.Save(user); err != nil {
		return fmt.Errorf("error saving identity: %w", err)
	}
	fmt.Fprintf(out, "Logged in as %s (%s).\n", user.Username, user.ID)
	return nil
}

func runLogout(cfg *config.Config, out io.Writer) error {
	store, identities, err := openIdentities(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := identities.Clear(); err != nil {
		return fmt.Errorf("error deleting identity: %w", err)
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runWhoami(cfg *config.Config, out io.Writer) error {
	store, identities, err := openIdentities(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	user, err := identities.Load()
	if perrors.Is(err, perrors.KindNotFound) {
		fmt.Fprintln(out, "not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", user.Username, user.ID)
	if raw, err := ui.DecodeAvatar(user.AvatarImage); err == nil && len(raw) > 0 {
		fmt.Fprintf(out, "avatar: %d bytes\n", len(raw))
	}
	fmt.Fprintf(out, "storage key: %s\n", identities.Key())
	return nil
}
