package api

import "encoding/json"

// User is the authenticated platform account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// FileInfo describes an uploaded source document.
type FileInfo struct {
	FileID     string `json:"file_id"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	UploadTime string `json:"upload_time"`
}

// UploadFileResponse is returned by the file upload endpoint.
type UploadFileResponse struct {
	Success  bool      `json:"success"`
	FileID   string    `json:"file_id,omitempty"`
	Message  string    `json:"message,omitempty"`
	FileInfo *FileInfo `json:"file_info,omitempty"`
}

// AlgorithmConfig selects the server-side pipeline strategies for a build.
// The algorithms themselves are opaque to the console.
type AlgorithmConfig struct {
	Preprocess          string `json:"preprocess"`
	EntityExtraction    string `json:"entity_extraction"`
	RelationExtraction  string `json:"relation_extraction"`
	KnowledgeCompletion string `json:"knowledge_completion"`
}

// KGCreateRequest asks the platform to build a knowledge graph from files.
type KGCreateRequest struct {
	FileIDs              []string        `json:"file_ids"`
	KGName               string          `json:"kg_name"`
	Algorithms           AlgorithmConfig `json:"algorithms"`
	ModelAPIKey          string          `json:"model_api_key,omitempty"`
	EnableCompletion     bool            `json:"enable_completion"`
	EnableVisualization  bool            `json:"enable_visualization"`
}

// KGCreateResponse acknowledges an accepted build task.
type KGCreateResponse struct {
	Success       bool   `json:"success"`
	TaskID        string `json:"task_id"`
	KGID          string `json:"kg_id,omitempty"`
	Message       string `json:"message,omitempty"`
	EstimatedTime int    `json:"estimated_time,omitempty"`
}

// Task status values reported by the progress endpoint.
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// KGProgress is one poll response for a build task.
type KGProgress struct {
	TaskID   string `json:"task_id"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
	Stage    string `json:"stage"`
	Message  string `json:"message,omitempty"`
	KGID     string `json:"kg_id,omitempty"`
}

// KnowledgeGraph is a server-managed graph; opaque beyond its metadata.
type KnowledgeGraph struct {
	KGID          string `json:"kg_id"`
	KGName        string `json:"kg_name"`
	EntityCount   int    `json:"entity_count"`
	RelationCount int    `json:"relation_count"`
	Status        string `json:"status,omitempty"`
	CreateTime    string `json:"create_time"`
	UpdateTime    string `json:"update_time"`
}

// KGListResponse is a paginated graph listing.
type KGListResponse struct {
	Graphs     []KnowledgeGraph `json:"graphs"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// KGQueryRequest queries a graph with natural language or a structured filter.
type KGQueryRequest struct {
	KGID             string          `json:"kg_id"`
	Query            string          `json:"query"`
	QueryType        string          `json:"query_type,omitempty"`
	TopK             int             `json:"top_k,omitempty"`
	IncludeEntities  bool            `json:"include_entities"`
	IncludeRelations bool            `json:"include_relations"`
	Filters          map[string]any  `json:"filters,omitempty"`
}

// KGQueryResponse carries matched entities and relations. Their inner shape
// is owned by the server; the console passes them through to the view.
type KGQueryResponse struct {
	KGID          string           `json:"kg_id"`
	Total         int              `json:"total"`
	Entities      []map[string]any `json:"entities,omitempty"`
	Relations     []map[string]any `json:"relations,omitempty"`
	Answer        string           `json:"answer,omitempty"`
	ExecutionTime float64          `json:"execution_time"`
	Message       string           `json:"message,omitempty"`
}

// KGVisualization is the node/edge payload for the graph view.
type KGVisualization struct {
	Nodes   []map[string]any `json:"nodes"`
	Edges   []map[string]any `json:"edges"`
	Message string           `json:"message,omitempty"`
}

// QAQuery is one chat turn against a knowledge graph.
type QAQuery struct {
	KGID       string `json:"kg_id"`
	Question   string `json:"question"`
	TopK       int    `json:"top_k,omitempty"`
	UseContext bool   `json:"use_context"`
	SessionID  string `json:"session_id,omitempty"`
}

// QAAnswer is the server's reply. A non-empty SessionID is authoritative
// over any locally generated one.
type QAAnswer struct {
	KGID             string           `json:"kg_id"`
	Question         string           `json:"question"`
	Answer           string           `json:"answer"`
	Confidence       float64          `json:"confidence"`
	RelatedEntities  []map[string]any `json:"related_entities,omitempty"`
	RelatedRelations []map[string]any `json:"related_relations,omitempty"`
	ReasoningSteps   []string         `json:"reasoning_steps,omitempty"`
	ResponseTime     float64          `json:"response_time"`
	SessionID        string           `json:"session_id,omitempty"`
	Timestamp        string           `json:"timestamp,omitempty"`
}

// QAHistoryItem pairs a past question with its answer.
type QAHistoryItem struct {
	Query     QAQuery  `json:"query"`
	Answer    QAAnswer `json:"answer"`
	Timestamp string   `json:"timestamp"`
}

// QAHistoryResponse is a paginated chat history.
type QAHistoryResponse struct {
	KGID      string          `json:"kg_id"`
	SessionID string          `json:"session_id"`
	History   []QAHistoryItem `json:"history"`
	Total     int             `json:"total"`
	Page      int             `json:"page"`
	PageSize  int             `json:"page_size"`
}

// AgentQueryRequest is one turn against the conversational agent.
type AgentQueryRequest struct {
	Query     string              `json:"query"`
	SessionID string              `json:"session_id,omitempty"`
	History   []map[string]string `json:"history,omitempty"`
}

// AgentResponse is the agent's reply.
type AgentResponse struct {
	Response       string          `json:"response"`
	SessionID      string          `json:"session_id,omitempty"`
	ThoughtProcess string          `json:"thought_process,omitempty"`
	ToolUsed       json.RawMessage `json:"tool_used,omitempty"`
}

// AgentToolsResponse lists the agent's registered tools.
type AgentToolsResponse struct {
	Tools []map[string]any `json:"tools"`
}

// RAGCollection is a named retrieval corpus.
type RAGCollection struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DocumentCount int    `json:"document_count"`
	CreatedAt     string `json:"created_at"`
}

// RAGCollectionCreate creates a collection.
type RAGCollectionCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RAGDocument is one document inside a collection.
type RAGDocument struct {
	ID           int    `json:"id"`
	CollectionID int    `json:"collection_id"`
	Filename     string `json:"filename"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	ChunkCount   int    `json:"chunk_count"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	UploadedAt   string `json:"uploaded_at"`
	ProcessedAt  string `json:"processed_at,omitempty"`
}

// RAGQueryRequest queries across collections (CollectionID optional).
type RAGQueryRequest struct {
	CollectionID int    `json:"collection_id,omitempty"`
	Query        string `json:"query"`
	TopK         int    `json:"top_k,omitempty"`
	Mode         string `json:"mode,omitempty"`
}

// RAGSource is one retrieved chunk backing an answer.
type RAGSource struct {
	DocumentID int     `json:"document_id"`
	Filename   string  `json:"filename"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}

// RAGQueryResponse is a retrieval-augmented answer with its sources.
type RAGQueryResponse struct {
	Answer     string      `json:"answer"`
	Sources    []RAGSource `json:"sources"`
	Confidence float64     `json:"confidence"`
}

// SQLConnectRequest registers an upstream database connection for NL2SQL.
type SQLConnectRequest struct {
	DBType   string `json:"db_type"`
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	Port     int    `json:"port,omitempty"`
}

// SQLConnectResponse returns the server-assigned connection id.
type SQLConnectResponse struct {
	Message      string `json:"message"`
	ConnectionID string `json:"connection_id"`
}

// SQLQueryRequest asks the server to translate a question into SQL and run it.
type SQLQueryRequest struct {
	ConnectionID string `json:"connection_id"`
	Question     string `json:"question"`
	TableName    string `json:"table_name,omitempty"`
}

// SQLQueryResponse carries the generated SQL and its result rows.
type SQLQueryResponse struct {
	SQL    string           `json:"sql"`
	Result []map[string]any `json:"result"`
}

// SQLExecuteRequest runs a raw SQL statement on a registered connection.
type SQLExecuteRequest struct {
	ConnectionID string `json:"connection_id"`
	SQL          string `json:"sql"`
}

// ConvertRequest turns a data source into a fine-tuning dataset.
type ConvertRequest struct {
	SourceType string         `json:"source_type"`
	SourceInfo map[string]any `json:"source_info"`
	OutputPath string         `json:"output_path"`
}

// ConvertResponse reports a finished conversion.
type ConvertResponse struct {
	Status         string `json:"status"`
	OutputPath     string `json:"output_path"`
	ConvertedCount int    `json:"converted_count"`
}

// ConvertHealth is the convert service's self-report.
type ConvertHealth struct {
	Status     string   `json:"status"`
	Formatters []string `json:"formatters"`
	Loaders    []string `json:"loaders"`
}

// HealthMonitorStatus is the platform's health-monitor toggle state.
type HealthMonitorStatus struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}
