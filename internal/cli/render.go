package cli

import (
	"fmt"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/ui"
)

const maxNameWidth = 80

// entry keeps the 1-based list position alongside the item, so grouped
// output still prints the numbers `toggle`/`rm` expect.
type entry struct {
	pos  int
	item model.ShoppingItem
}

func renderList(items []model.ShoppingItem, group bool) string {
	t := ui.Current()
	bought, total := model.Stats(items)

	header := fmt.Sprintf("%s  %s", t.Title.Render("Shopping list"), ui.Counts(bought, total))

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(fmt.Sprintf("Bought %d of %d  %s", bought, total, ui.ProgressBar(bought, total, 28))))
	lines = append(lines, "")

	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{pos: i + 1, item: it}
	}
	if group {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `shoplist add \"Milk\"`"))
	return ui.Panel(lines)
}

func flatLines(entries []entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		idx := fmt.Sprintf("%2d.", e.pos)
		box := t.Muted.Render(t.BoxUnchecked)
		name := truncate(e.item.Name, maxNameWidth)
		if e.item.IsBought {
			box = t.Success.Render(t.BoxChecked)
			name = t.Done.Render(name)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, name))
	}
	return out
}

func groupLines(entries []entry) []string {
	t := ui.Current()
	var pend, done []entry
	for _, e := range entries {
		if e.item.IsBought {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("To buy"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Bought"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
