package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/core/document"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/wire"
)

// DocumentCmd returns the quote/invoice command group
func DocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc"},
		Short:   "Manage quotes and invoices",
	}

	cmd.AddCommand(documentListCmd())
	cmd.AddCommand(documentShowCmd())
	cmd.AddCommand(documentCreateCmd())
	cmd.AddCommand(documentAddLineCmd())
	cmd.AddCommand(documentRemoveLineCmd())
	cmd.AddCommand(documentPromoteCmd())
	return cmd
}

func documentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quotes and invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := wire.DocumentService().ListDocuments(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}

			if len(docs) == 0 {
				fmt.Println("No documents found")
				return nil
			}

			rows := [][]string{{"NUMBER", "TYPE", "STATUS", "TOTAL"}}
			for _, d := range docs {
				rows = append(rows, []string{
					d.Number,
					string(d.Type),
					d.Status,
					render.Money(d.Currency, d.Total),
				})
			}
			render.Table(os.Stdout, rows)
			return nil
		},
	}
}

func documentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [document-id]",
		Short: "Show a document with its lines and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := wire.DocumentService().GetDocument(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get document: %w", err)
			}
			printDocumentDetail(detail)
			return nil
		},
	}
}

func printDocumentDetail(detail *primary.DocumentDetail) {
	doc := detail.Document
	fmt.Printf("\n%s %s [%s]\n", doc.Type, doc.Number, doc.Status)

	if len(detail.Lines) > 0 {
		rows := [][]string{{"#", "KIND", "DESCRIPTION", "QTY", "PRICE", "TAX%", "TOTAL"}}
		for _, line := range detail.Lines {
			rows = append(rows, []string{
				strconv.FormatInt(line.ID, 10),
				string(line.Kind),
				line.Description,
				fmt.Sprintf("%g", line.Qty),
				fmt.Sprintf("%.2f", line.UnitPrice),
				fmt.Sprintf("%g", line.TaxRate),
				render.Money(doc.Currency, line.Total),
			})
		}
		render.Table(os.Stdout, rows)
	}

	fmt.Printf("Subtotal: %s\n", render.Money(doc.Currency, detail.PreviewTotals.Subtotal))
	fmt.Printf("Tax:      %s\n", render.Money(doc.Currency, detail.PreviewTotals.TaxTotal))
	fmt.Printf("Total:    %s\n", render.Money(doc.Currency, detail.PreviewTotals.Total))
	fmt.Println()
}

func documentCreateCmd() *cobra.Command {
	var req primary.CreateDocumentRequest
	var docType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quote or invoice",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = document.Type(docType)
			doc, err := wire.DocumentService().CreateDocument(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}
			fmt.Println(render.Success("Created %s %s", doc.Type, doc.Number))
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "Quote", "Document type (Quote or Invoice)")
	cmd.Flags().StringVar(&req.CustomerID, "customer", "", "Customer id (required)")
	cmd.Flags().StringVar(&req.Currency, "currency", "EUR", "Currency code")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func documentAddLineCmd() *cobra.Command {
	var req primary.AddLineRequest
	var kind string

	cmd := &cobra.Command{
		Use:   "add-line [document-id] [description]",
		Short: "Add a priced line to a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.DocumentID = args[0]
			req.Description = args[1]
			req.Kind = document.LineKind(kind)

			detail, err := wire.DocumentService().AddLine(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to add line: %w", err)
			}

			fmt.Println(render.Success("Added line to %s", detail.Document.Number))
			printDocumentDetail(detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "Material", "Line kind (Labor, Material or Other)")
	cmd.Flags().Float64Var(&req.Qty, "qty", 1, "Quantity")
	cmd.Flags().Float64Var(&req.UnitPrice, "price", 0, "Unit price")
	cmd.Flags().Float64Var(&req.TaxRate, "tax", 0, "Tax rate percent")
	cmd.Flags().StringVar(&req.ItemID, "item", "", "Price-book item that prefills the line")
	return cmd
}

func documentRemoveLineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-line [document-id] [line-id]",
		Short: "Remove a line from a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid line id %q: %w", args[1], err)
			}

			detail, err := wire.DocumentService().RemoveLine(cmd.Context(), args[0], lineID)
			if err != nil {
				return fmt.Errorf("failed to remove line: %w", err)
			}

			fmt.Println(render.Success("Removed line %d from %s", lineID, detail.Document.Number))
			printDocumentDetail(detail)
			return nil
		},
	}
}

func documentPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [quote-id]",
		Short: "Promote a quote to an invoice",
		Long: `Convert a quote into a new invoice. This is one-way and not idempotent:
running it twice creates a second invoice (or a server-side rejection).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID, err := wire.DocumentService().PromoteToInvoice(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to promote quote: %w", err)
			}
			fmt.Println(render.Success("Created invoice %s", invoiceID))
			return nil
		},
	}
}
