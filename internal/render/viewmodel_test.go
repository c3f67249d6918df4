package render

import (
	"strings"
	"testing"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
)

func TestProgress_ClampsPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "negative", in: -5, want: 0},
		{name: "zero", in: 0, want: 0},
		{name: "mid", in: 45, want: 45},
		{name: "overshoot", in: 130, want: 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Progress(state.BuildSnapshot{Percent: tc.in})
			if got.Percent != tc.want {
				t.Fatalf("got %d, want %d", got.Percent, tc.want)
			}
		})
	}
}

func TestProgress_StatusFlags(t *testing.T) {
	t.Parallel()

	done := Progress(state.BuildSnapshot{Status: state.BuildCompleted, Percent: 100})
	if !done.Done || done.Failed {
		t.Fatalf("completed snapshot: got done=%v failed=%v", done.Done, done.Failed)
	}
	failed := Progress(state.BuildSnapshot{Status: state.BuildFailed})
	if failed.Done || !failed.Failed {
		t.Fatalf("failed snapshot: got done=%v failed=%v", failed.Done, failed.Failed)
	}
}

func TestPagination_WindowsAroundCurrentPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    state.Page
		width   int
		want    []int
		current int
	}{
		{
			name:  "single_page_hidden",
			page:  state.Page{Page: 1, TotalPages: 1},
			width: 5,
			want:  nil,
		},
		{
			name:    "window_centered",
			page:    state.Page{Page: 5, TotalPages: 9},
			width:   5,
			want:    []int{3, 4, 5, 6, 7},
			current: 5,
		},
		{
			name:    "clamped_at_start",
			page:    state.Page{Page: 1, TotalPages: 9},
			width:   5,
			want:    []int{1, 2, 3, 4, 5},
			current: 1,
		},
		{
			name:    "clamped_at_end",
			page:    state.Page{Page: 9, TotalPages: 9},
			width:   5,
			want:    []int{5, 6, 7, 8, 9},
			current: 9,
		},
		{
			name:    "fewer_pages_than_width",
			page:    state.Page{Page: 2, TotalPages: 3},
			width:   5,
			want:    []int{1, 2, 3},
			current: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			links := Pagination(tc.page, tc.width)
			if len(links) != len(tc.want) {
				t.Fatalf("got %d links, want %d", len(links), len(tc.want))
			}
			for i, link := range links {
				if link.Number != tc.want[i] {
					t.Fatalf("link %d: got %d, want %d", i, link.Number, tc.want[i])
				}
				if link.Current != (link.Number == tc.current) {
					t.Fatalf("link %d: current flag wrong for page %d", i, link.Number)
				}
			}
		})
	}
}

func TestGraph_CountsAndPayload(t *testing.T) {
	t.Parallel()

	vm := Graph(api.KGVisualization{
		Nodes: []map[string]any{{"id": "n1", "label": "Alice"}, {"id": "n2", "label": "Bob"}},
		Edges: []map[string]any{{"from": "n1", "to": "n2", "label": "knows"}},
	})
	if vm.NodeCount != 2 || vm.EdgeCount != 1 {
		t.Fatalf("got counts %d/%d, want 2/1", vm.NodeCount, vm.EdgeCount)
	}
	if !strings.Contains(string(vm.Payload), `"Alice"`) {
		t.Fatalf("payload missing node data: %s", vm.Payload)
	}
}

func TestSQLTable_OrdersColumnsAndStringifiesCells(t *testing.T) {
	t.Parallel()

	vm := SQLTable(api.SQLQueryResponse{
		SQL: "SELECT name, age FROM people",
		Result: []map[string]any{
			{"name": "Alice", "age": 31},
			{"name": "Bob", "age": nil},
		},
	})

	if len(vm.Columns) != 2 || vm.Columns[0] != "age" || vm.Columns[1] != "name" {
		t.Fatalf("got columns %v, want [age name]", vm.Columns)
	}
	if vm.Rows[0][0] != "31" || vm.Rows[0][1] != "Alice" {
		t.Fatalf("got first row %v", vm.Rows[0])
	}
	if vm.Rows[1][0] != "" {
		t.Fatalf("expected nil cell to render empty, got %q", vm.Rows[1][0])
	}
}

func TestSQLTable_EmptyResult(t *testing.T) {
	t.Parallel()

	vm := SQLTable(api.SQLQueryResponse{SQL: "SELECT 1 WHERE false"})
	if len(vm.Columns) != 0 || len(vm.Rows) != 0 {
		t.Fatalf("expected empty grid, got %v / %v", vm.Columns, vm.Rows)
	}
}

func TestFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tc := range tests {
		if got := FileSize(tc.in); got != tc.want {
			t.Fatalf("FileSize(%d): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMarkdown_SanitizesScriptTags(t *testing.T) {
	t.Parallel()

	md := NewMarkdown()
	out := string(md.Render("**bold** <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected markdown rendering, got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script tags to be stripped, got %q", out)
	}
}

func TestMarkdown_MemoizesRenderedFragments(t *testing.T) {
	t.Parallel()

	md := NewMarkdown()
	first := md.Render("answer with *emphasis*")
	second := md.Render("answer with *emphasis*")
	if first != second {
		t.Fatalf("expected identical cached output, got %q then %q", first, second)
	}
}
