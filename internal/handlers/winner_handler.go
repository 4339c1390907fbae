package handlers

import (
	"errors"
	"net/http"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"
	"github.com/czdteam-copilot/LuckyDraw/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WinnerHandler struct {
	winnerService *services.WinnerService
}

func NewWinnerHandler(winnerService *services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// AttachPayout saves bank details for a winner record
// POST /api/winners
func (h *WinnerHandler) AttachPayout(c *gin.Context) {
	var req models.AttachPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Vui lòng điền đầy đủ thông tin.",
		})
		return
	}

	winnerID, err := uuid.Parse(req.WinnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Không thể lưu thông tin.",
		})
		return
	}

	prizeID, err := uuid.Parse(req.PrizeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Không thể lưu thông tin.",
		})
		return
	}

	err = h.winnerService.AttachPayout(c.Request.Context(), winnerID, prizeID, req.Name, services.BankDetails{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountOwner:  req.AccountOwner,
	})

	switch {
	case errors.Is(err, services.ErrInvalidBankDetails):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Vui lòng điền đầy đủ thông tin.",
		})
	case errors.Is(err, services.ErrWinnerNotEligible):
		// Not-found and already-attached share one message on purpose.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Không thể lưu thông tin.",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Không thể lưu thông tin.",
		})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
