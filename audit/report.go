package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/omniscale/osmcsv/mapping"
)

// maxValues limits the number of rows of the value tables.
const maxValues = 50

// Report writes all audit results as plain text tables.
func (a *Auditor) Report(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Tag keys of %d elements\n\n", a.Elements)
	rows := [][]string{{"category", "count", "examples"}}
	for _, c := range mapping.Categories {
		rows = append(rows, []string{
			c.String(),
			strconv.FormatInt(a.Keys.Count(c), 10),
			strings.Join(a.Keys.Examples(c), " "),
		})
	}
	writeTable(&b, rows)

	types := a.Streets.Types()
	fmt.Fprintf(&b, "\n%d street types that might need revision\n\n", len(types))
	rows = [][]string{{"street type", "names"}}
	for _, t := range types {
		rows = append(rows, []string{t, strings.Join(a.Streets.Names(t), "; ")})
	}
	writeTable(&b, rows)

	for _, vc := range a.Values {
		fmt.Fprintf(&b, "\n%d unique values of %s\n\n", vc.Unique(), vc.Key)
		rows = [][]string{{"value", "count"}}
		for i, c := range vc.Counts() {
			if i == maxValues {
				rows = append(rows, []string{"...", ""})
				break
			}
			rows = append(rows, []string{c.Value, strconv.FormatInt(c.Count, 10)})
		}
		writeTable(&b, rows)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeTable writes rows with columns padded to the widest cell. Cell
// widths are display widths, so that wide characters line up.
func writeTable(b *strings.Builder, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for r, row := range rows {
		writeRow(b, row, widths)
		if r == 0 {
			sep := make([]string, len(widths))
			for i, w := range widths {
				sep[i] = strings.Repeat("-", w)
			}
			writeRow(b, sep, widths)
		}
	}
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		if i < len(row)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		}
	}
	b.WriteString("\n")
}
