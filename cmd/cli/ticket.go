package cli

import (
	"github.com/spf13/cobra"

	"github.com/manolaz/mosaic/internal/application/dto"
)

func init() {
	ticketCmd := &cobra.Command{
		Use:   "ticket",
		Short: "Mint and open tickets",
	}

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a ticket and print its encrypted share",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			req := &dto.MintTicketRequest{}
			req.EventID, _ = cmd.Flags().GetString("event")
			req.Recipient, _ = cmd.Flags().GetString("recipient")
			req.Authenticity, _ = cmd.Flags().GetString("authenticity")
			req.Tier, _ = cmd.Flags().GetString("tier")
			req.Track, _ = cmd.Flags().GetString("track")
			req.AttendeeType, _ = cmd.Flags().GetString("attendee-type")
			req.EscrowKey, _ = cmd.Flags().GetBool("escrow")

			resp, err := a.tickets.MintTicket(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	mintCmd.Flags().String("event", "", "Event object id")
	mintCmd.Flags().String("recipient", "", "Recipient wallet address")
	mintCmd.Flags().String("authenticity", "", "Authenticity code, generated when empty")
	mintCmd.Flags().String("tier", "", "Ticket tier")
	mintCmd.Flags().String("track", "", "Conference track")
	mintCmd.Flags().String("attendee-type", "", "Attendee type")
	mintCmd.Flags().Bool("escrow", false, "Escrow the payload key with the key custodian")
	_ = mintCmd.MarkFlagRequired("event")
	_ = mintCmd.MarkFlagRequired("recipient")

	openCmd := &cobra.Command{
		Use:   "open <share>",
		Short: "Decrypt a ciphertext:iv:key share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			payload, err := a.tickets.OpenEncryptedTicket(cmd.Context(), &dto.OpenTicketRequest{Share: args[0]})
			if err != nil {
				return err
			}
			return printJSON(payload)
		},
	}

	ticketCmd.AddCommand(mintCmd, openCmd)
	rootCmd.AddCommand(ticketCmd)
}
