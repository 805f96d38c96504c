package api

// Default values substituted for absent or malformed request fields. The
// frontend sends partial bodies freely, so the boundary coerces instead of
// rejecting.
const (
	DefaultPrompt   = "default prompt"
	DefaultResponse = "default response"
	DefaultTabID    = 1
	DefaultTabName  = "new chat"
	DefaultTabUser  = "new user"
)

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type SaveHistoryRequest struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	TabID    uint   `json:"tab_id"`
}

type SaveTabRequest struct {
	Name  string `json:"name"`
	User  string `json:"user"`
	Model string `json:"model"`
}

type HistoryQuery struct {
	Tab uint `schema:"tab,required"`
}

type TabsQuery struct {
	User string `schema:"user,required"`
}

type TabRecord struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	User  string `json:"user"`
	Model string `json:"model"`
}

type HistoryRecord struct {
	ID       uint   `json:"id"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	Tab      uint   `json:"tab"`
}

// The frontend expects every non-streaming payload under a "message" key,
// including list results.
type MessageResponse struct {
	Message string `json:"message"`
}

type TabsResponse struct {
	Message []TabRecord `json:"message"`
}

type HistoryResponse struct {
	Message []HistoryRecord `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
