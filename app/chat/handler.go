package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

type ChatService interface {
	Chat(ctx context.Context, sessionID string) (storefront.ChatView, error)
	SendChat(ctx context.Context, sessionID, message string) (storefront.ChatView, error)
}

type Response struct {
	Messages []insight.Message `json:"messages"`
	Pending  bool              `json:"pending"`
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(s ChatService) *ChatHandler {
	return &ChatHandler{svc: s}
}

func (h *ChatHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Chat(r.Context(), api.SessionID(r.Context()))
	if err != nil {
		api.WriteServiceError(w, r, err, "failed to load chat")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, Response{Messages: view.Messages, Pending: view.Pending})
}

func (h *ChatHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	view, err := h.svc.SendChat(r.Context(), api.SessionID(r.Context()), input.Message)
	if err != nil {
		if errors.Is(err, insight.ErrChatBusy) {
			api.WriteError(w, http.StatusConflict, "Reply in progress")
			return
		}
		api.WriteServiceError(w, r, err, "failed to send message")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, Response{Messages: view.Messages, Pending: view.Pending})
}
