package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/core/timeentry"
	"github.com/example/plumbops/internal/core/workorder"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/timeutil"
	"github.com/example/plumbops/internal/wire"
)

// WorkOrderCmd returns the work-order command group
func WorkOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage work orders through their lifecycle",
		Long:    "List, inspect, create and advance work orders. Lifecycle actions are validated against the status table before anything touches the API.",
	}

	cmd.AddCommand(workOrderListCmd())
	cmd.AddCommand(workOrderShowCmd())
	cmd.AddCommand(workOrderCreateCmd())
	cmd.AddCommand(workOrderTimeEntriesCmd())

	cmd.AddCommand(workOrderActionCmd("dispatch", "Dispatch a scheduled work order", workorder.ActionDispatch))
	cmd.AddCommand(workOrderStartRouteCmd())
	cmd.AddCommand(workOrderArriveCmd())
	cmd.AddCommand(workOrderStartServiceCmd())
	cmd.AddCommand(workOrderPauseCmd())
	cmd.AddCommand(workOrderResumeCmd())
	cmd.AddCommand(workOrderFinishCmd())

	return cmd
}

func workOrderListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := wire.WorkOrderService().ListWorkOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list work orders: %w", err)
			}

			orders = filterByStatus(orders, status)

			if len(orders) == 0 {
				fmt.Println("No work orders found")
				return nil
			}

			rows := [][]string{{"CODE", "STATUS", "TITLE", "SCHEDULED", "TECH"}}
			for _, wo := range orders {
				tech := wo.TechnicianID
				if tech == "" {
					tech = "-"
				}
				rows = append(rows, []string{
					wo.Code,
					render.StatusBadge(wo.Status),
					wo.Title,
					render.Timestamp(wo.ScheduledAt),
					tech,
				})
			}
			render.Table(os.Stdout, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (e.g. Scheduled, InService)")

	return cmd
}

// filterByStatus returns the work orders matching status, or the input
// unchanged when status is empty. The input slice is shared with the read
// cache, so matches are collected into a fresh slice rather than compacted
// in place.
func filterByStatus(orders []*primary.WorkOrder, status string) []*primary.WorkOrder {
	if status == "" {
		return orders
	}
	filtered := make([]*primary.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		if string(wo.Status) == status {
			filtered = append(filtered, wo)
		}
	}
	return filtered
}

func workOrderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [work-order-id]",
		Short: "Show work order details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wo, err := wire.WorkOrderService().GetWorkOrder(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get work order: %w", err)
			}
			printWorkOrder(wo)
			return nil
		},
	}
}

func printWorkOrder(wo *primary.WorkOrder) {
	fmt.Printf("\nWork Order: %s (%s)\n", wo.Code, wo.ID)
	fmt.Printf("Title:     %s\n", wo.Title)
	fmt.Printf("Status:    %s\n", render.StatusBadge(wo.Status))
	fmt.Printf("Customer:  %s\n", wo.CustomerID)
	if wo.TechnicianID != "" {
		fmt.Printf("Tech:      %s\n", wo.TechnicianID)
	}
	if wo.Address != "" {
		fmt.Printf("Address:   %s\n", wo.Address)
	}
	if wo.ScheduledAt != nil {
		fmt.Printf("Scheduled: %s\n", render.Timestamp(wo.ScheduledAt))
	}
	if wo.ArrivedAt != nil {
		fmt.Printf("Arrived:   %s\n", render.Timestamp(wo.ArrivedAt))
	}
	if wo.Description != "" {
		fmt.Printf("Notes:     %s\n", wo.Description)
	}
	fmt.Printf("Actions:   %s\n", render.ActionList(wo.PermittedActions))
	fmt.Println()
}

func workOrderCreateCmd() *cobra.Command {
	var req primary.CreateWorkOrderRequest
	var scheduledAt string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new work order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			if scheduledAt != "" {
				t, err := timeutil.ParseLocalInput(scheduledAt, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --scheduled value: %w", err)
				}
				req.ScheduledAt = t
			}

			wo, err := wire.WorkOrderService().CreateWorkOrder(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create work order: %w", err)
			}

			fmt.Println(render.Success("Created work order %s: %s", wo.Code, wo.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.CustomerID, "customer", "", "Customer id (required)")
	cmd.Flags().StringVar(&req.TechnicianID, "technician", "", "Technician id")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free-form description")
	cmd.Flags().StringVar(&req.Address, "address", "", "Service address")
	cmd.Flags().StringVar(&scheduledAt, "scheduled", "", "Scheduled time, local, e.g. 2026-09-01T14:30")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func workOrderTimeEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time-entries [work-order-id]",
		Short: "List time entries for a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := wire.WorkOrderService().GetTimeEntries(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get time entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No time entries found")
				return nil
			}

			rows := [][]string{{"TECH", "START", "END", "DURATION", "NOTES"}}
			now := time.Now()
			core := make([]timeentry.Entry, 0, len(entries))
			for _, e := range entries {
				entry := timeentry.Entry{
					ID:           e.ID,
					WorkOrderID:  e.WorkOrderID,
					TechnicianID: e.TechnicianID,
					StartAt:      e.StartAt,
					EndAt:        e.EndAt,
					Notes:        e.Notes,
				}
				core = append(core, entry)

				end := render.Timestamp(e.EndAt)
				if entry.Open() {
					end = "open"
				}
				start := e.StartAt
				rows = append(rows, []string{
					e.TechnicianID,
					render.Timestamp(&start),
					end,
					entry.Duration(now).Round(time.Minute).String(),
					e.Notes,
				})
			}
			render.Table(os.Stdout, rows)

			fmt.Printf("Total booked: %s\n", timeentry.TotalBooked(core, now).Round(time.Minute))
			if open, err := timeentry.OpenEntry(core); err != nil {
				fmt.Println(render.Failure("%v", err))
			} else if open != nil {
				fmt.Printf("Open entry:   %s since %s\n", open.TechnicianID, render.Timestamp(&open.StartAt))
			}
			return nil
		},
	}
}

// runAction dispatches a lifecycle action and prints the confirmed result.
func runAction(cmd *cobra.Command, id string, action workorder.Action, payload primary.ActionPayload) error {
	wo, err := wire.WorkOrderService().Dispatch(cmd.Context(), id, action, payload)
	if err != nil {
		return fmt.Errorf("failed to %s work order: %w", action, err)
	}
	fmt.Println(render.Success("%s is now %s", wo.Code, render.StatusBadge(wo.Status)))
	return nil
}

// workOrderActionCmd builds a payload-less action subcommand.
func workOrderActionCmd(use, short string, action workorder.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [work-order-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], action, primary.ActionPayload{})
		},
	}
}

func workOrderStartRouteCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "start-route [work-order-id]",
		Short: "Mark the technician as on route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := primary.ActionPayload{}
			if cmd.Flags().Changed("lat") {
				payload.TargetLat = &lat
			}
			if cmd.Flags().Changed("lng") {
				payload.TargetLng = &lng
			}
			return runAction(cmd, args[0], workorder.ActionStartRoute, payload)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Destination latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Destination longitude")
	return cmd
}

func workOrderArriveCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "arrive [work-order-id]",
		Short: "Record arrival on site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := primary.ActionPayload{}
			if at != "" {
				t, err := timeutil.ParseLocalInput(at, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --at value: %w", err)
				}
				payload.ArrivedAt = t
			}
			return runAction(cmd, args[0], workorder.ActionArrive, payload)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Arrival time, local, e.g. 2026-09-01T14:30 (defaults to now)")
	return cmd
}

func workOrderStartServiceCmd() *cobra.Command {
	var technician string

	cmd := &cobra.Command{
		Use:   "start-service [work-order-id]",
		Short: "Start service and open a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], workorder.ActionStartService, primary.ActionPayload{TechnicianID: technician})
		},
	}

	cmd.Flags().StringVar(&technician, "technician", "", "Technician performing the service")
	return cmd
}

func workOrderPauseCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "pause [work-order-id]",
		Short: "Pause service, closing the open time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], workorder.ActionPauseService, primary.ActionPayload{Reason: reason})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the work is paused (waiting on parts, etc.)")
	return cmd
}

func workOrderResumeCmd() *cobra.Command {
	var technician string

	cmd := &cobra.Command{
		Use:   "resume [work-order-id]",
		Short: "Resume a paused service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], workorder.ActionResumeService, primary.ActionPayload{TechnicianID: technician})
		},
	}

	cmd.Flags().StringVar(&technician, "technician", "", "Technician resuming the service")
	return cmd
}

func workOrderFinishCmd() *cobra.Command {
	var summary string

	cmd := &cobra.Command{
		Use:   "finish [work-order-id]",
		Short: "Finish service and complete the work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], workorder.ActionFinishService, primary.ActionPayload{Summary: summary})
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "Work summary for the customer record")
	return cmd
}
