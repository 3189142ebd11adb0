package main

import (
	"fmt"
	"io"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const dateLayout = "2006-01-02"

// renderRolled prints one row per rolled subscription.
func renderRolled(w io.Writer, rolled []domain.RolledSchedule, dryRun bool) {
	if len(rolled) == 0 {
		fmt.Fprintln(w, "No expired schedules.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	if dryRun {
		t.SetTitle("Expired schedules (dry run, nothing stored)")
	} else {
		t.SetTitle("Rolled schedules")
	}
	t.AppendHeader(table.Row{"Subscription", "User", "Name", "Previous", "Next", "Steps"})
	for _, r := range rolled {
		t.AppendRow(table.Row{
			r.SubscriptionID,
			r.UserID,
			r.Name,
			r.Previous.Format(dateLayout),
			r.Next.Format(dateLayout),
			r.Steps,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(rolled)})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}
