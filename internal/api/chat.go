package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"chat-backend/internal/database"
	"chat-backend/internal/relay"
	"chat-backend/pkg/api"
)

type ChatService struct {
	db           *gorm.DB
	relay        *relay.Relay
	defaultModel string
}

func NewChatService(db *gorm.DB, relay *relay.Relay, defaultModel string) *ChatService {
	return &ChatService{
		db:           db,
		relay:        relay,
		defaultModel: defaultModel,
	}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Get("/", RestHandler(s.Home))
	r.Post("/chat", RestStreamHandler(s.Chat))
	r.Route("/chat-history", func(r chi.Router) {
		r.Post("/save", RestHandler(s.SaveHistory))
		r.Get("/get", RestHandler(s.GetHistory))
		r.Delete("/clear", RestHandler(s.ClearHistory))
	})
	r.Route("/chat-tab", func(r chi.Router) {
		r.Post("/save", RestHandler(s.SaveTab))
		r.Get("/get", RestHandler(s.GetTabs))
		r.Delete("/clear", RestHandler(s.ClearTab))
	})
}

func (s *ChatService) Home(r *http.Request) (any, error) {
	return api.MessageResponse{Message: "hello world"}, nil
}

// Chat relays one prompt as a framed event stream. Nothing is persisted
// here; the client saves the finished exchange via /chat-history/save.
func (s *ChatService) Chat(r *http.Request) (relay.FrameStream, error) {
	req := ParseRequest[api.ChatRequest](r)
	return s.relay.Stream(r.Context(), req.Prompt), nil
}

func (s *ChatService) SaveHistory(r *http.Request) (any, error) {
	req := ParseRequest[api.SaveHistoryRequest](r)
	if req.Prompt == "" {
		req.Prompt = api.DefaultPrompt
	}
	if req.Response == "" {
		req.Response = api.DefaultResponse
	}
	if req.TabID == 0 {
		req.TabID = api.DefaultTabID
	}

	if _, err := database.SaveHistory(r.Context(), s.db, req.TabID, req.Prompt, req.Response); err != nil {
		// Store errors go back uncoded so the adapter writes the generic
		// body; the driver message must never reach the client.
		return nil, err
	}

	return api.MessageResponse{Message: "successfully saved!"}, nil
}

func (s *ChatService) GetHistory(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.HistoryQuery](r)
	if err != nil {
		return nil, err
	}

	history, err := database.ListHistory(r.Context(), s.db, query.Tab)
	if err != nil {
		return nil, err
	}

	return api.HistoryResponse{Message: toHistoryRecords(history)}, nil
}

func (s *ChatService) ClearHistory(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.HistoryQuery](r)
	if err != nil {
		return nil, err
	}

	if !database.DeleteHistory(r.Context(), s.db, query.Tab) {
		return nil, CodedErrorf(http.StatusInternalServerError, "Failed to remove chat tab!")
	}

	return api.MessageResponse{Message: "Chat tab removed successfully!"}, nil
}

func (s *ChatService) SaveTab(r *http.Request) (any, error) {
	req := ParseRequest[api.SaveTabRequest](r)
	if req.Name == "" {
		req.Name = api.DefaultTabName
	}
	if req.User == "" {
		req.User = api.DefaultTabUser
	}
	if req.Model == "" {
		req.Model = s.defaultModel
	}

	if _, err := database.CreateTab(r.Context(), s.db, req.Name, req.User, req.Model); err != nil {
		return nil, err
	}

	return api.MessageResponse{Message: "successfully saved!"}, nil
}

func (s *ChatService) GetTabs(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.TabsQuery](r)
	if err != nil {
		return nil, err
	}

	tabs, err := database.ListTabs(r.Context(), s.db, query.User)
	if err != nil {
		return nil, err
	}

	return api.TabsResponse{Message: toTabRecords(tabs)}, nil
}

func (s *ChatService) ClearTab(r *http.Request) (any, error) {
	query, err := ParseRequestQueryParams[api.HistoryQuery](r)
	if err != nil {
		return nil, err
	}

	if !database.DeleteTab(r.Context(), s.db, query.Tab) {
		return nil, CodedErrorf(http.StatusInternalServerError, "Failed to remove chat tab!")
	}

	return api.MessageResponse{Message: "Chat tab removed successfully!"}, nil
}
