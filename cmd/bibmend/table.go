package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderKVTable renders label/value rows as a titled two-column table.
// Numeric value columns read best right-aligned; paths left-aligned.
func renderKVTable(title string, rows [][2]string, alignValuesRight bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}

	valueAlign := text.AlignLeft
	if alignValuesRight {
		valueAlign = text.AlignRight
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: valueAlign},
	})
	return tw.Render()
}
