// Package cli contains the output adapters for the command surface:
// status badges, money formatting and aligned tables. Adapters are
// stateless translators from views to terminal text.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/plumbops/internal/core/workorder"
)

var statusColors = map[workorder.Status]*color.Color{
	workorder.StatusScheduled:  color.New(color.FgCyan),
	workorder.StatusDispatched: color.New(color.FgBlue),
	workorder.StatusOnRoute:    color.New(color.FgBlue),
	workorder.StatusArrived:    color.New(color.FgYellow),
	workorder.StatusInService:  color.New(color.FgGreen),
	workorder.StatusPaused:     color.New(color.FgRed),
	workorder.StatusCompleted:  color.New(color.FgGreen, color.Bold),
	workorder.StatusInvoiced:   color.New(color.FgMagenta),
	workorder.StatusClosed:     color.New(color.Faint),
}

// StatusBadge renders a work-order status with its lifecycle color.
// Unknown statuses render plain.
func StatusBadge(status workorder.Status) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(string(status))
	}
	return string(status)
}

// Money renders an amount with its currency code.
func Money(currency string, amount float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// Timestamp renders an optional instant for table cells.
func Timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// ActionList renders permitted actions as a comma-separated hint, or a
// terminal marker when nothing remains to do.
func ActionList(actions []workorder.Action) string {
	if len(actions) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, ", ")
}

// Table writes rows with aligned columns. The first row is the header.
func Table(w io.Writer, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// Success prefixes a confirmation line the way the rest of the console does.
func Success(format string, args ...any) string {
	return color.GreenString("✓ ") + fmt.Sprintf(format, args...)
}

// Failure renders a user-facing error line.
func Failure(format string, args ...any) string {
	return color.RedString("✗ ") + fmt.Sprintf(format, args...)
}
