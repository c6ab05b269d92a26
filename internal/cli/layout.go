package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/units"
)

// layoutCommand creates the layout command that previews the slot grid.
func (c *CLI) layoutCommand() *cobra.Command {
	flags := newConfigFlags()

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the card slot positions for a page geometry",
		Long: `Print the card slot positions for a page geometry.

The layout command computes the same grid the sheet command uses, without
reading any images, and prints each slot's lower-left corner in millimetres
from the bottom-left of the page. Use it to try card sizes, margins and gaps
before building a sheet. A grid that does not fit the paper is reported with
the space it needs and the space available.`,
		Example: `  cardsheet layout
  cardsheet layout --paper letter --card-w 57 --card-h 87 --margin-top 5 --margin-bottom 5
  cardsheet layout --config deck.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return runLayout(cfg)
		},
	}

	flags.registerGeometry(cmd.Flags())
	return cmd
}

// runLayout computes and prints the slot table for cfg.
func runLayout(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	page, card, grid, err := cfg.Geometry()
	if err != nil {
		return err
	}
	slots, err := layout.ComputeSlots(page, card, grid)
	if err != nil {
		return err
	}

	usable := layout.Usable(page, grid)
	needed := layout.Needed(card, grid)
	printSuccess("Layout fits")
	printKeyValue("Paper", fmt.Sprintf("%s (%s)", cfg.Paper, formatMM(page.Width, page.Height)))
	printKeyValue("Card", formatMM(card.Width, card.Height))
	printKeyValue("Grid", fmt.Sprintf("%d×%d, %d per page", grid.Columns, grid.Rows, grid.PerPage()))
	printKeyValue("Usable", formatMM(usable.Width, usable.Height))
	printKeyValue("Needed", formatMM(needed.Width, needed.Height))
	printNewline()

	fmt.Fprintln(os.Stdout, slotTable(slots, card, grid.Columns))
	return nil
}

// slotTable renders the slots as a table in millimetres.
func slotTable(slots []layout.Slot, card layout.Card, columns int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(slots))
	for i, s := range slots {
		r := layout.SlotRect(s, card)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", i/columns+1),
			fmt.Sprintf("%d", i%columns+1),
			fmt.Sprintf("%.1f", units.ToMM(r.Left())),
			fmt.Sprintf("%.1f", units.ToMM(r.Bottom())),
			fmt.Sprintf("%.1f", units.ToMM(r.Right())),
			fmt.Sprintf("%.1f", units.ToMM(r.Top())),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Slot", "Row", "Col", "Left", "Bottom", "Right", "Top").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col >= 3 {
				return cellStyle.Foreground(colorWhite).Align(lipgloss.Right)
			}
			return cellStyle.Foreground(colorGray)
		})
	return t.Render()
}

func formatMM(w, h float64) string {
	return fmt.Sprintf("%.1f × %.1f mm", units.ToMM(w), units.ToMM(h))
}
