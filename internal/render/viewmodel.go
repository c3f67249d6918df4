// Package render turns store state and API responses into template data.
// The transforms are pure; the template execution lives behind the echo
// Renderer in templates.go.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"sort"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
)

// ProgressVM drives the build progress bar.
type ProgressVM struct {
	TaskID  string
	Percent int
	Stage   string
	Message string
	Done    bool
	Failed  bool
}

// Progress clamps the reported percent into [0,100]; the upstream task
// runner has been seen reporting transient values outside the range.
func Progress(snapshot state.BuildSnapshot) ProgressVM {
	percent := snapshot.Percent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return ProgressVM{
		TaskID:  snapshot.TaskID,
		Percent: percent,
		Stage:   snapshot.Stage,
		Message: snapshot.Message,
		Done:    snapshot.Status == state.BuildCompleted,
		Failed:  snapshot.Status == state.BuildFailed,
	}
}

// PageLink is one entry in the pagination strip.
type PageLink struct {
	Number  int
	Current bool
}

// Pagination returns a window of up to width page links centered on the
// current page. Empty when there is a single page.
func Pagination(page state.Page, width int) []PageLink {
	if page.TotalPages <= 1 {
		return nil
	}
	if width < 1 {
		width = 1
	}

	start := page.Page - width/2
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > page.TotalPages {
		end = page.TotalPages
		start = end - width + 1
		if start < 1 {
			start = 1
		}
	}

	links := make([]PageLink, 0, end-start+1)
	for n := start; n <= end; n++ {
		links = append(links, PageLink{Number: n, Current: n == page.Page})
	}
	return links
}

// GraphVM carries the visualization payload to the template as a JSON blob
// the embedded page script feeds to the canvas, plus counts for the header.
type GraphVM struct {
	NodeCount int
	EdgeCount int
	Payload   template.JS
	Message   string
}

// Graph serializes the node/edge payload. A marshal failure yields an empty
// canvas with the error in the message line rather than a broken page.
func Graph(viz api.KGVisualization) GraphVM {
	vm := GraphVM{
		NodeCount: len(viz.Nodes),
		EdgeCount: len(viz.Edges),
		Message:   viz.Message,
	}
	payload, err := json.Marshal(map[string]any{
		"nodes": viz.Nodes,
		"edges": viz.Edges,
	})
	if err != nil {
		vm.Payload = template.JS(`{"nodes":[],"edges":[]}`)
		vm.Message = fmt.Sprintf("visualization payload unavailable: %v", err)
		return vm
	}
	vm.Payload = template.JS(payload)
	return vm
}

// SQLTableVM is a generated-SQL result rendered as a column/row grid.
type SQLTableVM struct {
	SQL     string
	Columns []string
	Rows    [][]string
}

// SQLTable flattens the upstream row maps into an ordered grid. Column order
// is alphabetical since the maps carry none; cells are stringified with %v.
func SQLTable(resp api.SQLQueryResponse) SQLTableVM {
	vm := SQLTableVM{SQL: resp.SQL}
	if len(resp.Result) == 0 {
		return vm
	}

	seen := make(map[string]bool)
	for _, row := range resp.Result {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				vm.Columns = append(vm.Columns, col)
			}
		}
	}
	sort.Strings(vm.Columns)

	vm.Rows = make([][]string, 0, len(resp.Result))
	for _, row := range resp.Result {
		cells := make([]string, len(vm.Columns))
		for i, col := range vm.Columns {
			if v, ok := row[col]; ok && v != nil {
				cells[i] = fmt.Sprintf("%v", v)
			}
		}
		vm.Rows = append(vm.Rows, cells)
	}
	return vm
}

// Confidence formats a 0..1 confidence score for display.
func Confidence(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return fmt.Sprintf("%.0f%% confident", v*100)
}

// FileSize renders a byte count for the file list.
func FileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
