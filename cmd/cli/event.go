package cli

import (
	"github.com/spf13/cobra"

	"github.com/manolaz/mosaic/internal/application/dto"
)

func init() {
	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Create and list events",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create and share an event on chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			req := &dto.CreateEventRequest{}
			req.Title, _ = cmd.Flags().GetString("title")
			req.Description, _ = cmd.Flags().GetString("description")
			req.StartsAt, _ = cmd.Flags().GetString("starts")
			req.EndsAt, _ = cmd.Flags().GetString("ends")
			req.CategorySlug, _ = cmd.Flags().GetString("category")
			req.OrganizerSlug, _ = cmd.Flags().GetString("organizer")

			resp, err := a.events.CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	createCmd.Flags().String("title", "", "Event title")
	createCmd.Flags().String("description", "", "Event description")
	createCmd.Flags().String("starts", "", "Start time, e.g. 2026-03-14T09:00")
	createCmd.Flags().String("ends", "", "End time, e.g. 2026-03-14T18:00")
	createCmd.Flags().String("category", "", "Category slug")
	createCmd.Flags().String("organizer", "", "Organizer slug")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("starts")
	_ = createCmd.MarkFlagRequired("ends")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed events",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			req := &dto.EventListRequest{}
			req.Organizer, _ = cmd.Flags().GetString("organizer")
			req.CategorySlug, _ = cmd.Flags().GetString("category")
			req.FromMs, _ = cmd.Flags().GetInt64("from")
			req.ToMs, _ = cmd.Flags().GetInt64("to")
			req.Limit, _ = cmd.Flags().GetInt("limit")
			req.Offset, _ = cmd.Flags().GetInt("offset")

			resp, err := a.marketplace.ListEvents(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	listCmd.Flags().String("organizer", "", "Filter by organizer address")
	listCmd.Flags().String("category", "", "Filter by category slug")
	listCmd.Flags().Int64("from", 0, "Window start, epoch milliseconds")
	listCmd.Flags().Int64("to", 0, "Window end, epoch milliseconds")
	listCmd.Flags().Int("limit", 50, "Page size")
	listCmd.Flags().Int("offset", 0, "Page offset")

	detailCmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Fetch one event from chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			detail, err := a.marketplace.EventDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(detail)
		},
	}

	eventCmd.AddCommand(createCmd, listCmd, detailCmd)
	rootCmd.AddCommand(eventCmd)
}
