package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect the configured signing wallet",
	}

	addressCmd := &cobra.Command{
		Use:   "address",
		Short: "Print the configured signer address",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			fmt.Println(a.signer.Address())
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the signing seed, base64 encoded",
		Long:  "Prints the private seed. Intended for moving a dev wallet between machines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			fmt.Println(a.signer.ExportBase64())
			return nil
		},
	}

	walletCmd.AddCommand(addressCmd, exportCmd)
	rootCmd.AddCommand(walletCmd)
}
