// Package state holds the console's page-session state: auth, the selected
// knowledge graph, chat session ids, local mirrors of server-side lists and
// the NL2SQL connection registry. The store is injectable so components and
// tests never depend on a module-level singleton.
package state

import (
	"sync"

	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/pkg/api"
)

// DBConnection is one registered NL2SQL target. The credentials stay
// upstream; the console only keeps the handle and display metadata.
type DBConnection struct {
	ConnectionID string
	Driver       string
	Host         string
	Database     string
}

// Notice is a one-shot user-facing notification. Each logical success or
// failure queues exactly one.
type Notice struct {
	Level   string
	Message string
}

// Notice levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Turn is one question/answer exchange kept for the chat transcript.
type Turn struct {
	Question   string
	Answer     string
	Thought    string
	Confidence float64
}

// BuildSnapshot mirrors the active build task for the progress display.
type BuildSnapshot struct {
	TaskID   string
	Percent  int
	Stage    string
	Message  string
	KGID     string
	Status   string
}

// Build snapshot status values.
const (
	BuildRunning   = "running"
	BuildCompleted = "completed"
	BuildFailed    = "failed"
	BuildCancelled = "cancelled"
)

// Page is a pagination cursor for a cached listing.
type Page struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Store is the shared page-session state. All mutation goes through its
// lock; list mirrors are replaced wholesale and tagged with a monotonic
// fetch sequence so an older fetch can never clobber a newer one.
type Store struct {
	mu sync.Mutex

	token      string
	user       *api.User
	selectedKG string
	sessions   map[session.Kind]string
	turns      map[session.Kind][]Turn

	nextSeq   uint64
	filesSeq  uint64
	files     []api.FileInfo
	graphsSeq uint64
	graphs    []api.KnowledgeGraph
	graphPage Page

	connections map[string]DBConnection
	build       *BuildSnapshot
	notices     []Notice
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions:    make(map[session.Kind]string),
		turns:       make(map[session.Kind][]Turn),
		connections: make(map[string]DBConnection),
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetAuth records a successful login.
func (s *Store) SetAuth(token string, user api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	u := user
	s.user = &u
}

// ClearAuth ends the page session's authentication.
func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// User returns the logged-in account, if any.
func (s *Store) User() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// SelectedKG returns the knowledge graph the QA view is bound to.
func (s *Store) SelectedKG() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedKG
}

// SelectKG binds the QA view to a knowledge graph. Switching to a different
// graph invalidates the QA session id in the same critical section, so no
// in-flight reader can observe the new graph with the old session.
func (s *Store) SelectKG(kgID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedKG == kgID {
		return
	}
	s.selectedKG = kgID
	delete(s.sessions, session.KindQA)
	delete(s.turns, session.KindQA)
}

// SessionID returns the active session id for kind.
func (s *Store) SessionID(kind session.Kind) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[kind]
	return id, ok
}

// EnsureSession implements session.Registry. The existence check and the
// store of a freshly generated id happen under one lock acquisition.
func (s *Store) EnsureSession(kind session.Kind, gen func() string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.sessions[kind]; ok {
		return id
	}
	id := gen()
	s.sessions[kind] = id
	return id
}

// ClearSession implements session.Registry.
func (s *Store) ClearSession(kind session.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, kind)
}

// AppendTurn adds one exchange to the transcript for kind.
func (s *Store) AppendTurn(kind session.Kind, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[kind] = append(s.turns[kind], turn)
}

// Turns returns a copy of the transcript for kind.
func (s *Store) Turns(kind session.Kind) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns[kind]))
	copy(out, s.turns[kind])
	return out
}

// ClearTurns drops the transcript for kind. Callers clearing a conversation
// also clear its session id.
func (s *Store) ClearTurns(kind session.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, kind)
}

// AdoptSession installs a server-returned session id, but only if the id
// that was current when the request was issued is still current. A response
// that raced with a clear or graph switch is dropped and reported false.
func (s *Store) AdoptSession(kind session.Kind, issued, server string) bool {
	if server == "" || server == issued {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[kind]
	if !ok || current != issued {
		return false
	}
	s.sessions[kind] = server
	return true
}

// BeginFetch tags an outgoing list fetch with a monotonic sequence number.
// Apply calls with an older sequence than the last applied one are discarded.
func (s *Store) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// ApplyFiles replaces the file mirror wholesale. Returns false when a newer
// fetch has already been applied.
func (s *Store) ApplyFiles(seq uint64, files []api.FileInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.filesSeq {
		return false
	}
	s.filesSeq = seq
	s.files = make([]api.FileInfo, len(files))
	copy(s.files, files)
	return true
}

// Files returns a copy of the file mirror.
func (s *Store) Files() []api.FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.FileInfo, len(s.files))
	copy(out, s.files)
	return out
}

// ApplyGraphs replaces the knowledge-graph mirror and its pagination cursor
// wholesale. Returns false when a newer fetch has already been applied.
func (s *Store) ApplyGraphs(seq uint64, resp api.KGListResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.graphsSeq {
		return false
	}
	s.graphsSeq = seq
	s.graphs = make([]api.KnowledgeGraph, len(resp.Graphs))
	copy(s.graphs, resp.Graphs)
	s.graphPage = Page{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	}
	return true
}

// Graphs returns a copy of the knowledge-graph mirror and its cursor.
func (s *Store) Graphs() ([]api.KnowledgeGraph, Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.KnowledgeGraph, len(s.graphs))
	copy(out, s.graphs)
	return out, s.graphPage
}

// UpdateGraph refreshes a single graph's metadata in place. This is the one
// partial-update carve-out from wholesale replacement; unknown ids are
// ignored rather than appended, since membership belongs to the list fetch.
func (s *Store) UpdateGraph(graph api.KnowledgeGraph) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.graphs {
		if s.graphs[i].KGID == graph.KGID {
			s.graphs[i] = graph
			return true
		}
	}
	return false
}

// PutConnection registers an NL2SQL connection handle.
func (s *Store) PutConnection(conn DBConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[conn.ConnectionID] = conn
}

// RemoveConnection drops a connection handle.
func (s *Store) RemoveConnection(connectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, connectionID)
}

// Connections returns all registered connection handles.
func (s *Store) Connections() []DBConnection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DBConnection, 0, len(s.connections))
	for _, conn := range s.connections {
		out = append(out, conn)
	}
	return out
}

// SetBuild replaces the active build snapshot.
func (s *Store) SetBuild(snapshot BuildSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot
	s.build = &snap
}

// Build returns the active build snapshot, if any.
func (s *Store) Build() (BuildSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.build == nil {
		return BuildSnapshot{}, false
	}
	return *s.build, true
}

// ClearBuild drops the build snapshot once the user dismisses it.
func (s *Store) ClearBuild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.build = nil
}

// PushNotice queues a one-shot notification.
func (s *Store) PushNotice(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

// DrainNotices returns all queued notices and empties the queue, so each
// notice is shown exactly once.
func (s *Store) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}
