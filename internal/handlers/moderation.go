package handlers

import (
	"net/http"
	"time"

	"aiinasia/internal/db"
	"aiinasia/internal/models"
	"aiinasia/internal/services"

	"github.com/gin-gonic/gin"
)

// ModerationHandler is the admin control surface for one article's comments:
// the AI comment set as a bulk unit, plus the pending queue of human
// comments. Registered behind AdminRequired.
type ModerationHandler struct{}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{}
}

func (h *ModerationHandler) articleByAid(c *gin.Context) (*models.Article, bool) {
	var article models.Article
	if err := db.DB.Where("aid = ?", c.Param("aid")).First(&article).Error; err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}
	return &article, true
}

// confirmed gates destructive bulk operations on an explicit confirmation
// sent by the confirm dialog, never on the button click alone.
func confirmed(c *gin.Context) bool {
	return c.PostForm("confirm") == "true"
}

// Console renders the moderation view for one article.
func (h *ModerationHandler) Console(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Article not found")
		return
	}

	var aiComments []models.Comment
	db.DB.Where("article_id = ? AND is_ai = ?", article.ID, true).
		Order("comment_date ASC, created_at ASC").
		Find(&aiComments)

	// Pending queue: human comments awaiting approval. An empty queue
	// renders nothing at all on the template side.
	var pending []models.Comment
	db.DB.Preload("User").
		Where("article_id = ? AND is_ai = ? AND approved = ?", article.ID, false, false).
		Order("created_at ASC").
		Find(&pending)

	published, unpublished := services.GetAICommentService().Counts(article.ID)

	Render(c, http.StatusOK, "moderation/console.html", gin.H{
		"Title":            "Moderate: " + article.Title,
		"Article":          article,
		"AIComments":       aiComments,
		"PendingComments":  pending,
		"PublishedCount":   published,
		"UnpublishedCount": unpublished,
	})
}

// Generate creates a fresh batch of AI comments for the article. Concurrent
// triggers collapse into the in-flight generation.
func (h *ModerationHandler) Generate(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}

	count, err := services.GetAICommentService().Generate(article.ID)
	if err != nil {
		c.String(http.StatusBadGateway, "Generation failed: %v", err)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.String(http.StatusOK, "Generated %d comments", count)
}

// GenerateSEO asks the model for fresh keywords and a meta description and
// writes them onto the article.
func (h *ModerationHandler) GenerateSEO(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}

	meta, err := services.GetLLMService().GenerateSEOMetadata(article.Title, article.Content)
	if err != nil {
		c.String(http.StatusBadGateway, "SEO generation failed: %v", err)
		return
	}

	if err := db.DB.Model(article).Updates(map[string]interface{}{
		"seo_keywords":    meta.Keywords,
		"seo_description": meta.Description,
	}).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// RegenerateAll deletes the AI set and generates a fresh one. Irreversible,
// so it requires confirmation.
func (h *ModerationHandler) RegenerateAll(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		c.String(http.StatusPreconditionRequired, "Confirmation required")
		return
	}

	count, err := services.GetAICommentService().RegenerateAll(article.ID)
	if err != nil {
		c.String(http.StatusBadGateway, "Regeneration failed: %v", err)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.String(http.StatusOK, "Regenerated %d comments", count)
}

// PublishAll flips every unpublished AI comment to published.
func (h *ModerationHandler) PublishAll(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}

	if _, err := services.GetAICommentService().PublishAll(article.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// UnpublishAll hides every published AI comment.
func (h *ModerationHandler) UnpublishAll(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}

	if _, err := services.GetAICommentService().UnpublishAll(article.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// DeleteAll removes the article's whole AI comment set. Requires
// confirmation.
func (h *ModerationHandler) DeleteAll(c *gin.Context) {
	article, ok := h.articleByAid(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		c.String(http.StatusPreconditionRequired, "Confirmation required")
		return
	}

	if _, err := services.GetAICommentService().DeleteAll(article.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

func (h *ModerationHandler) aiCommentByCid(c *gin.Context) (*models.Comment, bool) {
	var comment models.Comment
	if err := db.DB.Preload("Article").Where("cid = ? AND is_ai = ?", c.Param("cid"), true).First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}
	return &comment, true
}

// TogglePublish flips one AI comment's published flag.
func (h *ModerationHandler) TogglePublish(c *gin.Context) {
	comment, ok := h.aiCommentByCid(c)
	if !ok {
		return
	}

	comment.Published = !comment.Published
	if err := db.DB.Model(comment).Update("published", comment.Published).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(comment.Article.Aid)

	label := "Publish"
	if comment.Published {
		label = "Unpublish"
	}
	c.String(http.StatusOK, label)
}

// Edit rewrites one AI comment's content in place.
func (h *ModerationHandler) Edit(c *gin.Context) {
	comment, ok := h.aiCommentByCid(c)
	if !ok {
		return
	}

	content := c.PostForm("content")
	if content == "" {
		c.String(http.StatusUnprocessableEntity, "Comment text is required")
		return
	}

	if err := db.DB.Model(comment).Update("content", content).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(comment.Article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// Delete removes one AI comment. Requires confirmation.
func (h *ModerationHandler) Delete(c *gin.Context) {
	comment, ok := h.aiCommentByCid(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		c.String(http.StatusPreconditionRequired, "Confirmation required")
		return
	}

	if err := db.DB.Delete(comment).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(comment.Article.Aid)
	c.Status(http.StatusOK)
}

// SetCommentDate sets the display date of one AI comment to any
// operator-chosen timestamp. No business-rule validation beyond parseability.
func (h *ModerationHandler) SetCommentDate(c *gin.Context) {
	comment, ok := h.aiCommentByCid(c)
	if !ok {
		return
	}

	raw := c.PostForm("comment_date")
	when, err := time.Parse("2006-01-02T15:04", raw)
	if err != nil {
		if when, err = time.Parse(time.RFC3339, raw); err != nil {
			c.String(http.StatusUnprocessableEntity, "Unrecognized date format")
			return
		}
	}

	if err := db.DB.Model(comment).Update("comment_date", &when).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(comment.Article.Aid)
	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// Approve makes a pending human comment publicly visible and awards the
// author a point.
func (h *ModerationHandler) Approve(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.Preload("Article").
		Where("cid = ? AND is_ai = ? AND approved = ?", c.Param("cid"), false, false).
		First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Model(&comment).Update("approved", true).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if comment.UserID != nil {
		services.AddPointsAsync(*comment.UserID, services.PointsCommentApproved, services.ActionCommentApproved)
	}

	invalidateArticleCaches(comment.Article.Aid)
	c.Status(http.StatusOK)
}

// Reject deletes a pending human comment outright.
func (h *ModerationHandler) Reject(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.Preload("Article").
		Where("cid = ? AND is_ai = ? AND approved = ?", c.Param("cid"), false, false).
		First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	invalidateArticleCaches(comment.Article.Aid)
	c.Status(http.StatusOK)
}
