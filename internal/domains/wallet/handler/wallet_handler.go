package handler

import (
	"net/http"

	"event-manager/internal/domains/wallet"
	"event-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WalletHandler struct {
	service wallet.Service
}

func NewWalletHandler(service wallet.Service) *WalletHandler {
	return &WalletHandler{service: service}
}

// Verify - POST /api/v1/auth/wallet/verify
func (h *WalletHandler) Verify(c *gin.Context) {
	var req wallet.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Request body must be valid JSON")
		return
	}

	session, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		status, wErr := wallet.StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("wallet sign in failed")
		}
		response.ErrorWithDetails(c, status, wErr.Code, wErr.Message, wErr.Details)
		return
	}

	response.Success(c, http.StatusOK, session)
}
