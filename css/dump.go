package css

import (
	"fmt"
	"strconv"
	"strings"
)

// treeWriter accumulates indented debug lines.
type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw treeWriter) text(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

// Dump returns human readable tree of the stylesheet structure for debug
// reports. Unlike String it shows how selectors were interpreted.
func (s *Stylesheet) Dump() string {
	tw := treeWriter{w: &strings.Builder{}}
	if s == nil {
		tw.line(0, "stylesheet <nil>")
		return tw.w.String()
	}
	tw.line(0, "stylesheet items=%d warnings=%d", len(s.Items), len(s.Warnings))
	for i, item := range s.Items {
		switch {
		case item.Rule != nil:
			tw.line(1, "[%d] rule", i)
			dumpRule(tw, 2, item.Rule)
		case item.MediaBlock != nil:
			tw.line(1, "[%d] media max=%d min=%d", i, item.MediaBlock.Query.MaxWidth, item.MediaBlock.Query.MinWidth)
			tw.text(2, "query", item.MediaBlock.Query.Raw)
			for j := range item.MediaBlock.Rules {
				tw.line(2, "rule %d", j)
				dumpRule(tw, 3, &item.MediaBlock.Rules[j])
			}
		}
	}
	for _, w := range s.Warnings {
		tw.text(1, "warning", w)
	}
	return tw.w.String()
}

func dumpRule(tw treeWriter, depth int, r *Rule) {
	tw.text(depth, "selector", r.Selector.Raw)
	tw.text(depth, "class", r.Selector.Class)
	if r.Selector.Rest != "" {
		tw.text(depth, "rest", r.Selector.Rest)
	}
	for _, d := range r.Declarations {
		tw.text(depth, d.Property, d.Value.Raw)
	}
}
