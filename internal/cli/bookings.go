package cli

import (
	"context"
	"pediacenter/internal/bookings/handler"
	"pediacenter/pkg/model"

	"github.com/spf13/cobra"
)

func newSlotsCmd(open BackendFactory) *cobra.Command {
	var (
		req model.SlotSearchRequest
		age int
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "List open appointment slots for a visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("age") {
				req.ChildAgeYears = &age
			}
			return withBackend(cmd, open, func(ctx context.Context, b Backend) (any, error) {
				found, err := b.SearchSlots(ctx, req)
				if err != nil {
					return nil, err
				}
				return handler.SlotsResponse{Slots: found}, nil
			})
		},
	}

	c.Flags().StringVar(&req.VisitType, "visit-type", model.VisitTypeSick, "sick_visit, well_child or other")
	c.Flags().StringVar(&req.Urgency, "urgency", model.UrgencyRoutine, "urgent or routine")
	c.Flags().StringVar(&req.PreferredTimes, "preferred-times", model.TimeOfDayAny, "morning, afternoon or any")
	c.Flags().StringVar(&req.PreferredProvider, "provider", "", "only this provider")
	c.Flags().IntVar(&age, "age", 0, "child age in years")
	return c
}

func newBookCmd(open BackendFactory) *cobra.Command {
	var req model.CreateBookingRequest

	c := &cobra.Command{
		Use:   "book",
		Short: "Book a slot for a child",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b Backend) (any, error) {
				return b.Book(ctx, req)
			})
		},
	}

	c.Flags().StringVar(&req.SlotStart, "slot", "", "slot start, YYYY-MM-DDTHH:MM")
	c.Flags().StringVar(&req.Provider, "provider", "", "provider name")
	c.Flags().StringVar(&req.ChildName, "child", "", "child name")
	_ = c.MarkFlagRequired("slot")
	_ = c.MarkFlagRequired("provider")
	_ = c.MarkFlagRequired("child")
	return c
}

func newCancelCmd(open BackendFactory) *cobra.Command {
	var req model.CancelRequest

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a booking by confirmation id or by child, slot and provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b Backend) (any, error) {
				return b.Cancel(ctx, req)
			})
		},
	}

	c.Flags().StringVar(&req.ConfirmationID, "id", "", "confirmation id")
	c.Flags().StringVar(&req.ChildName, "child", "", "child name, matched as a substring")
	c.Flags().StringVar(&req.SlotStart, "slot", "", "slot start or date, YYYY-MM-DD[THH:MM]")
	c.Flags().StringVar(&req.Provider, "provider", "", "provider name")
	return c
}

func newRescheduleCmd(open BackendFactory) *cobra.Command {
	var req model.RescheduleRequest

	c := &cobra.Command{
		Use:   "reschedule",
		Short: "Move a child's booking to a new slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b Backend) (any, error) {
				return b.Reschedule(ctx, req)
			})
		},
	}

	c.Flags().StringVar(&req.OldConfirmationID, "id", "", "confirmation id of the booking to move")
	c.Flags().StringVar(&req.ChildName, "child", "", "child name")
	c.Flags().StringVar(&req.NewSlotStart, "slot", "", "new slot start, YYYY-MM-DDTHH:MM")
	c.Flags().StringVar(&req.NewProvider, "provider", "", "new provider name")
	_ = c.MarkFlagRequired("child")
	_ = c.MarkFlagRequired("slot")
	_ = c.MarkFlagRequired("provider")
	return c
}

func newListCmd(open BackendFactory) *cobra.Command {
	var childName string

	c := &cobra.Command{
		Use:   "list",
		Short: "List a child's upcoming bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(ctx context.Context, b Backend) (any, error) {
				bookings, err := b.List(ctx, childName)
				if err != nil {
					return nil, err
				}
				return handler.BookingsResponse{Bookings: bookings}, nil
			})
		},
	}

	c.Flags().StringVar(&childName, "child", "", "child name, matched as a substring")
	_ = c.MarkFlagRequired("child")
	return c
}
