// ABOUTME: Chat endpoints backed by the chat collaborator service.
// ABOUTME: Send, create, history and delete conversations.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/healthdash/internal/chat"
)

type sendMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// SendMessage posts a user message and returns the assistant reply.
func (a *API) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if !bindJSON(c, &req, msgMessageRequired) {
		return
	}

	reply, err := a.chat.Send(c.Request.Context(), req.Message, req.ConversationID)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			respondError(c, http.StatusBadRequest, msgMessageRequired)
			return
		}
		a.logger.Error("chat send", "err", err)
		respondError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// CreateConversation starts an empty conversation.
func (a *API) CreateConversation(c *gin.Context) {
	id, err := a.chat.Create(c.Request.Context())
	if err != nil {
		a.logger.Error("chat create", "err", err)
		respondError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversationId": id})
}

// GetConversation returns a conversation's messages.
func (a *API) GetConversation(c *gin.Context) {
	id := c.Param("conversationId")
	if id == "" {
		respondError(c, http.StatusBadRequest, msgConversationIDReq)
		return
	}

	messages, err := a.chat.History(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			respondError(c, http.StatusNotFound, msgConvNotFound)
			return
		}
		a.logger.Error("chat history", "err", err)
		respondError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// DeleteConversation removes a conversation.
func (a *API) DeleteConversation(c *gin.Context) {
	err := a.chat.Delete(c.Request.Context(), c.Param("conversationId"))
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			respondError(c, http.StatusNotFound, msgConvNotFound)
			return
		}
		a.logger.Error("chat delete", "err", err)
		respondError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.Status(http.StatusNoContent)
}
