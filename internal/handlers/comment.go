package handlers

import (
	"net/http"
	"strings"

	"aiinasia/internal/db"
	"aiinasia/internal/middleware"
	"aiinasia/internal/models"
	"aiinasia/internal/services"
	"aiinasia/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// parentDepth walks the parent chain to find how deep a comment sits.
// Bounded: a broken or cyclic chain stops the walk instead of spinning.
func parentDepth(comment models.Comment) int {
	depth := 0
	current := comment
	for current.ParentID != nil && depth < services.MaxReplyDepth+1 {
		if *current.ParentID == current.ID {
			break
		}
		var parent models.Comment
		if err := db.DB.First(&parent, *current.ParentID).Error; err != nil {
			break
		}
		depth++
		current = parent
	}
	return depth
}

// Create handles both top-level comments and replies. New human comments
// enter the pending queue unapproved.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	aid := c.Param("aid")

	var article models.Article
	if err := db.DB.Where("aid = ?", aid).First(&article).Error; err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	parentCid := c.PostForm("parent_cid")

	// Precondition check before any write. The composer posts over htmx, so
	// a 422 swaps the message into the form's error slot and the typed
	// buffer stays put.
	if content == "" {
		c.String(http.StatusUnprocessableEntity, "Comment text is required")
		return
	}

	var parentID *uint
	if parentCid != "" {
		var parent models.Comment
		if err := db.DB.Where("cid = ? AND article_id = ?", parentCid, article.ID).First(&parent).Error; err != nil {
			c.String(http.StatusUnprocessableEntity, "The comment you are replying to no longer exists")
			return
		}
		if parentDepth(parent) >= services.MaxReplyDepth {
			c.String(http.StatusUnprocessableEntity, "This thread is too deep to reply to")
			return
		}
		parentID = &parent.ID
	}

	comment := models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		ArticleID:  article.ID,
		UserID:     &user.ID,
		ParentID:   parentID,
		AuthorName: user.Username,
		AvatarURL:  user.AvatarURL,
		Content:    content,
		Approved:   false,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		c.String(http.StatusInternalServerError, "Could not save your comment, please try again")
		return
	}

	invalidateArticleCaches(article.Aid)

	// Post-commit hook: points for the first few comments a day.
	go func() {
		if services.CanEarnCommentPoints(user.ID) {
			services.AddPoints(user.ID, services.PointsCommentCreate, services.ActionCommentCreate)
		}
	}()

	if c.GetHeader("HX-Request") != "" {
		HtmxRedirect(c, "/a/"+aid)
		return
	}
	c.Redirect(http.StatusFound, "/a/"+aid)
}

// Delete lets a member remove their own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Preload("Article").Where("cid = ?", cid).First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if comment.UserID == nil || *comment.UserID != user.ID {
		c.Status(http.StatusForbidden)
		return
	}

	db.DB.Delete(&comment)

	invalidateArticleCaches(comment.Article.Aid)

	c.Status(http.StatusOK)
}
