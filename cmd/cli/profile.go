package cli

import (
	"github.com/spf13/cobra"

	"github.com/manolaz/mosaic/internal/domain/models"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Save and fetch wallet profiles",
	}

	saveCmd := &cobra.Command{
		Use:   "save <address>",
		Short: "Pin a profile document and cache its blob id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			profile := &models.UserProfile{}
			profile.DisplayName, _ = cmd.Flags().GetString("name")
			profile.Bio, _ = cmd.Flags().GetString("bio")
			profile.Email, _ = cmd.Flags().GetString("email")
			profile.Twitter, _ = cmd.Flags().GetString("twitter")
			profile.Website, _ = cmd.Flags().GetString("website")

			resp, err := a.profiles.SaveProfile(cmd.Context(), args[0], profile)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	saveCmd.Flags().String("name", "", "Display name")
	saveCmd.Flags().String("bio", "", "Short bio")
	saveCmd.Flags().String("email", "", "Contact email")
	saveCmd.Flags().String("twitter", "", "Twitter handle")
	saveCmd.Flags().String("website", "", "Website URL")
	_ = saveCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <address>",
		Short: "Fetch the profile cached for a wallet address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			profile, err := a.profiles.LoadProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}

	profileCmd.AddCommand(saveCmd, getCmd)
	rootCmd.AddCommand(profileCmd)
}
