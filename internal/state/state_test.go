package state

import (
	"testing"

	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/pkg/api"
)

func TestApplyFiles_OutOfOrderFetchIsDiscarded(t *testing.T) {
	t.Parallel()

	s := NewStore()

	older := s.BeginFetch()
	newer := s.BeginFetch()

	// The newer request's response arrives first.
	if !s.ApplyFiles(newer, []api.FileInfo{{FileID: "new"}}) {
		t.Fatal("expected newer fetch to apply")
	}
	if s.ApplyFiles(older, []api.FileInfo{{FileID: "old"}}) {
		t.Fatal("expected older fetch to be discarded")
	}

	files := s.Files()
	if len(files) != 1 || files[0].FileID != "new" {
		t.Fatalf("expected newer data to survive, got %+v", files)
	}
}

func TestApplyGraphs_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	s := NewStore()

	first := s.BeginFetch()
	s.ApplyGraphs(first, api.KGListResponse{
		Graphs: []api.KnowledgeGraph{{KGID: "kg1"}, {KGID: "kg2"}},
		Total:  2, Page: 1, PageSize: 20, TotalPages: 1,
	})

	second := s.BeginFetch()
	s.ApplyGraphs(second, api.KGListResponse{
		Graphs: []api.KnowledgeGraph{{KGID: "kg3"}},
		Total:  1, Page: 1, PageSize: 20, TotalPages: 1,
	})

	graphs, page := s.Graphs()
	if len(graphs) != 1 || graphs[0].KGID != "kg3" {
		t.Fatalf("expected wholesale replacement, got %+v", graphs)
	}
	if page.Total != 1 {
		t.Fatalf("expected cursor to follow the newest fetch, got %+v", page)
	}
}

func TestUpdateGraph_PartialUpdateInPlace(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seq := s.BeginFetch()
	s.ApplyGraphs(seq, api.KGListResponse{
		Graphs: []api.KnowledgeGraph{
			{KGID: "kg1", EntityCount: 10},
			{KGID: "kg2", EntityCount: 20},
		},
	})

	if !s.UpdateGraph(api.KnowledgeGraph{KGID: "kg2", EntityCount: 99}) {
		t.Fatal("expected known graph to update")
	}
	if s.UpdateGraph(api.KnowledgeGraph{KGID: "kg9"}) {
		t.Fatal("expected unknown graph to be ignored")
	}

	graphs, _ := s.Graphs()
	if graphs[1].EntityCount != 99 {
		t.Fatalf("expected in-place update, got %+v", graphs[1])
	}
	if len(graphs) != 2 {
		t.Fatalf("expected membership unchanged, got %d graphs", len(graphs))
	}
}

func TestEnsureSession_StableUntilCleared(t *testing.T) {
	t.Parallel()

	s := NewStore()

	first := session.GetOrCreate(s, session.KindQA)
	second := session.GetOrCreate(s, session.KindQA)
	if first != second {
		t.Fatalf("expected identical ids, got %q and %q", first, second)
	}

	session.Clear(s, session.KindQA)
	third := session.GetOrCreate(s, session.KindQA)
	if third == first {
		t.Fatalf("expected a fresh id after clear, got %q again", third)
	}
}

func TestAdoptSession_StaleResponseDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	s := NewStore()

	issued := s.EnsureSession(session.KindQA, func() string { return "qa_1_aaaa" })

	// The user switches knowledge graphs while the request is in flight;
	// the session id is replaced before the response arrives.
	s.SelectKG("kg-old")
	s.SelectKG("kg-new")
	fresh := s.EnsureSession(session.KindQA, func() string { return "qa_2_bbbb" })
	if fresh == issued {
		t.Fatal("expected graph switch to invalidate the qa session")
	}

	if s.AdoptSession(session.KindQA, issued, "server-assigned") {
		t.Fatal("expected stale adoption to be rejected")
	}
	current, _ := s.SessionID(session.KindQA)
	if current != fresh {
		t.Fatalf("expected %q to survive, got %q", fresh, current)
	}
}

func TestAdoptSession_CurrentResponseWins(t *testing.T) {
	t.Parallel()

	s := NewStore()
	issued := s.EnsureSession(session.KindAgent, func() string { return "agent_1_aaaa" })

	if !s.AdoptSession(session.KindAgent, issued, "server-assigned") {
		t.Fatal("expected adoption to succeed")
	}
	current, _ := s.SessionID(session.KindAgent)
	if current != "server-assigned" {
		t.Fatalf("got %q, want %q", current, "server-assigned")
	}
}

func TestSelectKG_SameGraphKeepsSession(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SelectKG("kg1")
	id := session.GetOrCreate(s, session.KindQA)

	s.SelectKG("kg1")
	if got, _ := s.SessionID(session.KindQA); got != id {
		t.Fatalf("expected session to survive reselecting the same graph")
	}

	s.AppendTurn(session.KindQA, Turn{Question: "who is alice?", Answer: "an entity"})

	s.SelectKG("kg2")
	if _, ok := s.SessionID(session.KindQA); ok {
		t.Fatal("expected session to be cleared on graph change")
	}
	if turns := s.Turns(session.KindQA); len(turns) != 0 {
		t.Fatalf("expected transcript to be cleared on graph change, got %d turns", len(turns))
	}
}

func TestDrainNotices_EachNoticeShownOnce(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.PushNotice(NoticeError, "upload failed")
	s.PushNotice(NoticeSuccess, "graph built")

	first := s.DrainNotices()
	if len(first) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(first))
	}
	if second := s.DrainNotices(); len(second) != 0 {
		t.Fatalf("expected drained queue to be empty, got %d", len(second))
	}
}
