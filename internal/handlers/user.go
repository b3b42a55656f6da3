package handlers

import (
	"net/http"

	"aiinasia/internal/db"
	"aiinasia/internal/middleware"
	"aiinasia/internal/models"
	"aiinasia/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile is a member's public page: identity, level badge, join age.
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Member not found")
		return
	}

	var commentCount int64
	db.DB.Model(&models.Comment{}).Where("user_id = ? AND approved = ?", user.ID, true).Count(&commentCount)

	level := utils.GetUserLevel(user.Points)

	Render(c, http.StatusOK, "user/public.html", gin.H{
		"Title":        user.Username,
		"Member":       user,
		"Level":        level,
		"Badge":        utils.BadgeForLevel(level),
		"CommentCount": commentCount,
		"DaysJoined":   utils.GetDaysSinceJoined(user.CreatedAt),
	})
}

// PointLogs lists the signed-in member's point ledger.
func (h *UserHandler) PointLogs(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var logs []models.PointLog
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(100).Find(&logs)

	Render(c, http.StatusOK, "user/points.html", gin.H{
		"Title":  "My points",
		"Logs":   logs,
		"Member": user,
	})
}
