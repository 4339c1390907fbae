package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/czdteam-copilot/LuckyDraw/internal/auth"
	"github.com/czdteam-copilot/LuckyDraw/internal/models"
	"github.com/czdteam-copilot/LuckyDraw/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	winnerService *services.WinnerService
	adminPassword string
}

func NewAdminHandler(winnerService *services.WinnerService, adminPassword string) *AdminHandler {
	return &AdminHandler{
		winnerService: winnerService,
		adminPassword: adminPassword,
	}
}

// Login exchanges the admin password for an operator token
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "password required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	token, err := auth.GenerateOperatorToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// GetWinners lists all winner records for the reporting view
// GET /api/admin/winners
func (h *AdminHandler) GetWinners(c *gin.Context) {
	winners, err := h.winnerService.ListWinners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load winners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "winners": winners})
}

// SetPaid flips the paid-out flag on a winner record
// PATCH /api/admin/winners/:id/paid
func (h *AdminHandler) SetPaid(c *gin.Context) {
	winnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid winner id"})
		return
	}

	var req models.SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paid flag required"})
		return
	}

	winner, err := h.winnerService.SetPaidOut(c.Request.Context(), winnerID, *req.Paid)
	if errors.Is(err, services.ErrWinnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "winner not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update winner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "winner": winner})
}

// GetStats returns event totals for the admin dashboard
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.winnerService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
