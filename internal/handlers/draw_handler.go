package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/czdteam-copilot/LuckyDraw/internal/models"
	"github.com/czdteam-copilot/LuckyDraw/internal/repository"
	"github.com/czdteam-copilot/LuckyDraw/internal/services"

	"github.com/gin-gonic/gin"
)

// noLuckMessage is shown both when the pool is exhausted and when a draw
// keeps losing races; the two cases are logged differently but the player
// cannot tell them apart.
const noLuckMessage = "Chúc bạn may mắn lần sau! 🍀"

type DrawHandler struct {
	drawService *services.DrawService
	repo        *repository.Repository
}

func NewDrawHandler(drawService *services.DrawService, repo *repository.Repository) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
		repo:        repo,
	}
}

// Draw performs one atomic draw for the submitted player name
// POST /api/draw
func (h *DrawHandler) Draw(c *gin.Context) {
	var req models.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Vui lòng điền đầy đủ thông tin.",
		})
		return
	}

	result, err := h.drawService.Draw(c.Request.Context(), req.Name)
	if errors.Is(err, services.ErrInvalidPlayerName) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Vui lòng điền đầy đủ thông tin.",
		})
		return
	}
	if errors.Is(err, services.ErrContention) {
		log.Printf("[Draw] contention for %q: %v", req.Name, err)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"prize":   nil,
			"message": noLuckMessage,
		})
		return
	}
	if err != nil {
		log.Printf("[Draw] error for %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Có lỗi xảy ra, vui lòng thử lại.",
		})
		return
	}

	if !result.Awarded {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"prize":   nil,
			"message": noLuckMessage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"winner_id": result.WinnerID,
		"code":      result.Code,
		"prize": gin.H{
			"id":     result.Prize.ID,
			"label":  result.Prize.Label,
			"amount": result.Prize.Amount,
		},
	})
}

// GetPrizes returns the current pool status
// GET /api/prizes
func (h *DrawHandler) GetPrizes(c *gin.Context) {
	prizes, err := h.repo.ListPrizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load prizes",
		})
		return
	}

	totalRemaining, err := h.repo.TotalRemaining(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to load prizes",
		})
		return
	}

	status := make([]models.PrizeStatus, len(prizes))
	for i, p := range prizes {
		status[i] = models.PrizeStatus{
			ID:       p.ID,
			Label:    p.Label,
			Amount:   p.Amount,
			Quantity: p.Quantity,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"prizes":         status,
		"totalRemaining": totalRemaining,
	})
}
