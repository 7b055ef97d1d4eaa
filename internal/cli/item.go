package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/wire"
)

// ItemCmd returns the price-book item command group
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the price book (materials and services)",
	}

	cmd.AddCommand(itemListCmd())
	cmd.AddCommand(itemShowCmd())
	cmd.AddCommand(itemCreateCmd())
	cmd.AddCommand(itemUpdateCmd())
	cmd.AddCommand(itemDeleteCmd())
	return cmd
}

func itemListCmd() *cobra.Command {
	var filters primary.ItemFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List price-book items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := wire.ItemService().ListItems(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No items found")
				return nil
			}

			rows := [][]string{{"SKU", "NAME", "TYPE", "UNIT", "PRICE", "TAX%", "STOCK"}}
			for _, it := range items {
				stock := "-"
				if it.Stock != nil {
					stock = fmt.Sprintf("%g", *it.Stock)
				}
				rows = append(rows, []string{
					it.SKU,
					it.Name,
					it.Type,
					it.Unit,
					fmt.Sprintf("%.2f", it.UnitPrice),
					fmt.Sprintf("%g", it.TaxRate),
					stock,
				})
			}
			render.Table(os.Stdout, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Search, "search", "", "Filter by name or SKU")
	cmd.Flags().StringVar(&filters.Type, "type", "", "Filter by type (Material or Service)")
	return cmd
}

func itemShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [item-id]",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := wire.ItemService().GetItem(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get item: %w", err)
			}

			fmt.Printf("\nItem:  %s (%s)\n", it.Name, it.ID)
			fmt.Printf("SKU:   %s\n", it.SKU)
			fmt.Printf("Type:  %s\n", it.Type)
			fmt.Printf("Unit:  %s\n", it.Unit)
			fmt.Printf("Price: %.2f\n", it.UnitPrice)
			fmt.Printf("Tax:   %g%%\n", it.TaxRate)
			if it.Stock != nil {
				fmt.Printf("Stock: %g\n", *it.Stock)
			}
			fmt.Println()
			return nil
		},
	}
}

// itemFlags binds the editable item fields onto cmd. The returned function
// materializes the request, mapping --stock to nil when the flag was not set.
func itemFlags(cmd *cobra.Command, req *primary.ItemRequest) func() primary.ItemRequest {
	var stock float64
	cmd.Flags().StringVar(&req.SKU, "sku", "", "Stock keeping unit")
	cmd.Flags().StringVar(&req.Type, "type", "Material", "Item type (Material or Service)")
	cmd.Flags().StringVar(&req.Unit, "unit", "pcs", "Unit of measure")
	cmd.Flags().Float64Var(&req.UnitPrice, "price", 0, "Unit price")
	cmd.Flags().Float64Var(&req.TaxRate, "tax", 0, "Tax rate percent")
	cmd.Flags().Float64Var(&stock, "stock", 0, "Stock on hand (omit for non-tracked items)")

	return func() primary.ItemRequest {
		out := *req
		if cmd.Flags().Changed("stock") {
			out.Stock = &stock
		}
		return out
	}
}

func itemCreateCmd() *cobra.Command {
	var req primary.ItemRequest

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a price-book item",
		Args:  cobra.ExactArgs(1),
	}
	build := itemFlags(cmd, &req)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req.Name = args[0]
		it, err := wire.ItemService().CreateItem(cmd.Context(), build())
		if err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		fmt.Println(render.Success("Created item %s: %s", it.ID, it.Name))
		return nil
	}
	return cmd
}

func itemUpdateCmd() *cobra.Command {
	var req primary.ItemRequest

	cmd := &cobra.Command{
		Use:   "update [item-id] [name]",
		Short: "Update a price-book item",
		Args:  cobra.ExactArgs(2),
	}
	build := itemFlags(cmd, &req)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req.Name = args[1]
		if err := wire.ItemService().UpdateItem(cmd.Context(), args[0], build()); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		fmt.Println(render.Success("Updated item %s", args[0]))
		return nil
	}
	return cmd
}

func itemDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [item-id]",
		Short: "Delete a price-book item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.ItemService().DeleteItem(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}
			fmt.Println(render.Success("Deleted item %s", args[0]))
			return nil
		},
	}
}
