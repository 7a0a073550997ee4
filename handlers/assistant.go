// File: handlers/assistant.go
package handlers

import (
	"errors"
	"net/http"

	"tablevoice/models"
	"tablevoice/services/dialogue"
	"tablevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the dialogue core over HTTP.
type AssistantHandler struct {
	Service dialogue.DialogueService
}

func NewAssistantHandler(svc dialogue.DialogueService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

// TurnHandler runs one turn of the booking conversation.
func (h *AssistantHandler) TurnHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid turn request", err.Error())
		return
	}
	// Reject before any external call is made.
	if req.Utterance == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid turn request", "utterance is required")
		return
	}

	resp, err := h.Service.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		var extErr *dialogue.ExtractionError
		if errors.As(err, &extErr) {
			logger.Error("turn aborted by extraction failure", zap.Error(err))
			c.JSON(http.StatusBadGateway, utils.ErrorResponse{
				Message: "Sorry, I couldn't process that. Please try again.",
			})
			return
		}
		if errors.Is(err, dialogue.ErrEmptyUtterance) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid turn request", err.Error())
			return
		}
		logger.Error("turn processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
