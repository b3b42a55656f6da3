package handlers

import (
	"fmt"
	"net/http"

	"aiinasia/internal/db"
	"aiinasia/internal/middleware"
	"aiinasia/internal/models"
	"aiinasia/internal/services"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct{}

func NewReactionHandler() *ReactionHandler {
	return &ReactionHandler{}
}

// Toggle flips one reaction kind for the signed-in viewer on one comment.
// The response is the new count for that kind, for fragment swapping.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		// Reaction controls are hidden for anonymous viewers; a direct hit
		// gets bounced to login.
		c.Header("HX-Redirect", "/login")
		c.Status(http.StatusOK)
		return
	}

	cid := c.Param("cid")
	kind := c.Param("kind")
	if !models.ValidReactionKind(kind) {
		c.Status(http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if err := db.DB.Preload("Article").Where("cid = ?", cid).First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	added, err := services.ToggleReaction(comment.ID, user.ID, kind)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	// Post-commit hook: a point for reacting, only on toggle-on and only
	// under the daily cap. Fire-and-forget.
	if added {
		go func() {
			if services.CanEarnReactionPoints(user.ID) {
				services.AddPoints(user.ID, services.PointsReactionGiven, services.ActionReactionGiven)
			}
		}()
	}

	invalidateArticleCaches(comment.Article.Aid)

	var count int64
	db.DB.Model(&models.Reaction{}).
		Where("comment_id = ? AND kind = ?", comment.ID, kind).
		Count(&count)
	c.String(http.StatusOK, fmt.Sprintf("%d", count))
}
