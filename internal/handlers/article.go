package handlers

import (
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"aiinasia/internal/db"
	"aiinasia/internal/middleware"
	"aiinasia/internal/models"
	"aiinasia/internal/services"
	"aiinasia/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArticleHandler struct{}

func NewArticleHandler() *ArticleHandler {
	return &ArticleHandler{}
}

// articleDetailData is the shared (viewer-independent) part of a detail page:
// the article plus the flat visible comment rows. Threading, composer state
// and per-viewer reactions are rebuilt per request.
type articleDetailData struct {
	Article  models.Article
	Comments []models.Comment
	Prev     *models.Article
	Next     *models.Article
}

func detailCacheKey(aid string) string {
	return "article:detail:" + aid
}

// invalidateArticleCaches drops the cached views that any comment mutation
// can make stale.
func invalidateArticleCaches(aid string) {
	utils.GetCache().Delete(detailCacheKey(aid))
	utils.GetCache().Delete("article:list:page:1")
}

// fillCommentCounts batch-fills the visible comment count for a page of
// articles.
func fillCommentCounts(articles []models.Article) {
	if len(articles) == 0 {
		return
	}

	articleIDs := make([]uint, len(articles))
	for i, a := range articles {
		articleIDs[i] = a.ID
	}

	type countResult struct {
		ArticleID uint
		Count     int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("article_id, COUNT(*) as count").
		Where("article_id IN ?", articleIDs).
		Where("(is_ai = ? AND published = ?) OR (is_ai = ? AND approved = ?)", true, true, false, true).
		Group("article_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ArticleID] = r.Count
	}

	for i := range articles {
		articles[i].CommentCount = countMap[articles[i].ID]
	}
}

func siteURL() string {
	if u := os.Getenv("SITE_URL"); u != "" {
		return u
	}
	return "https://aiinasia.com"
}

func (h *ArticleHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"))
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("article:list:page:%d", page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "article/list.html", hData)
			return
		}
	}

	perPage := 20
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Article{}).Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var articles []models.Article
	db.DB.Preload("User").Preload("Category").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&articles)

	fillCommentCounts(articles)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	fullURL := siteURL()
	if page > 1 {
		fullURL = fmt.Sprintf("%s?page=%d", fullURL, page)
	}

	renderData := gin.H{
		"Articles":    articles,
		"Categories":  categories,
		"Active":      "home",
		"Title":       "AI in ASIA",
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Description": "Reporting on artificial intelligence across Asia: news, business strategy, guides and opinion.",
		"Keywords":    "AI in Asia, artificial intelligence, Asia tech, AI news, AI business",
		"FullURL":     fullURL,
	}

	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "article/list.html", renderData)
}

func (h *ArticleHandler) ListByCategory(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := db.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Category not found")
		return
	}

	page := utils.StringToInt(c.Query("page"))
	if page < 1 {
		page = 1
	}

	perPage := 20
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Article{}).Where("category_id = ?", category.ID).Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var articles []models.Article
	db.DB.Preload("User").Preload("Category").
		Where("category_id = ?", category.ID).
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&articles)

	fillCommentCounts(articles)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	fullURL := fmt.Sprintf("%s/c/%s", siteURL(), category.Slug)
	if page > 1 {
		fullURL = fmt.Sprintf("%s?page=%d", fullURL, page)
	}

	Render(c, http.StatusOK, "article/list.html", gin.H{
		"Articles":    articles,
		"Categories":  categories,
		"Active":      "category",
		"Category":    category,
		"Title":       category.Name,
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Description": category.Description,
		"Keywords":    fmt.Sprintf("AI in Asia, %s, artificial intelligence", category.Name),
		"FullURL":     fullURL,
	})
}

func (h *ArticleHandler) Search(c *gin.Context) {
	query := c.Query("q")

	var articles []models.Article
	if query != "" {
		searchPattern := "%" + query + "%"
		db.DB.Preload("User").Preload("Category").
			Where("title ILIKE ? OR content ILIKE ?", searchPattern, searchPattern).
			Order("created_at DESC").
			Limit(50).
			Find(&articles)
	}

	fillCommentCounts(articles)

	Render(c, http.StatusOK, "search.html", gin.H{
		"Articles":    articles,
		"Query":       query,
		"Active":      "search",
		"Title":       "Search - " + query,
		"Description": "Search AI in ASIA coverage",
		"Keywords":    fmt.Sprintf("AI in Asia, search, %s", query),
		"FullURL":     fmt.Sprintf("%s/search?q=%s", siteURL(), query),
	})
}

// loadDetailData returns the shared detail payload, from cache when fresh.
func loadDetailData(aid string) (*articleDetailData, error) {
	cacheKey := detailCacheKey(aid)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(*articleDetailData); ok {
			return data, nil
		}
	}

	var article models.Article
	if err := db.DB.Preload("User").Preload("Category").Where("aid = ?", aid).First(&article).Error; err != nil {
		return nil, err
	}

	// Public thread: approved human comments plus published AI comments.
	var comments []models.Comment
	db.DB.Preload("User").
		Where("article_id = ?", article.ID).
		Where("(is_ai = ? AND published = ?) OR (is_ai = ? AND approved = ?)", true, true, false, true).
		Order("created_at ASC").
		Find(&comments)

	data := &articleDetailData{Article: article, Comments: comments}

	var prev, next models.Article
	if err := db.DB.Select("aid, title").
		Where("created_at < ?", article.CreatedAt).
		Order("created_at DESC").First(&prev).Error; err == nil {
		data.Prev = &prev
	}
	if err := db.DB.Select("aid, title").
		Where("created_at > ?", article.CreatedAt).
		Order("created_at ASC").First(&next).Error; err == nil {
		data.Next = &next
	}

	utils.GetCache().Set(cacheKey, data, 5*time.Minute)
	return data, nil
}

func (h *ArticleHandler) Detail(c *gin.Context) {
	aid := c.Param("aid")

	data, err := loadDetailData(aid)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Article not found")
		return
	}
	article := data.Article

	db.DB.Model(&models.Article{}).Where("id = ?", article.ID).UpdateColumn("views", gorm.Expr("views + 1"))

	viewer := middleware.CurrentUser(c)
	viewerID := uint(0)
	if viewer != nil {
		viewerID = viewer.ID
	}

	// Reply composers are only offered to signed-in viewers; the reply query
	// parameter carries the one comment whose composer is open.
	activeComposer := ""
	if viewer != nil {
		activeComposer = c.Query("reply")
	}

	roots := services.OrganizeThreaded(data.Comments)

	commentIDs := make([]uint, len(data.Comments))
	for i, cm := range data.Comments {
		commentIDs[i] = cm.ID
	}
	reactions, err := services.ReactionSummaries(commentIDs, viewerID)
	if err != nil {
		reactions = nil
	}

	thread := services.BuildThreadView(roots, activeComposer, reactions)

	description := article.SEODescription
	if description == "" {
		description = article.Summary
		if description == "" {
			description = article.Content
		}
		runes := []rune(description)
		if len(runes) > 150 {
			description = string(runes[:150]) + "..."
		}
		description = strings.TrimSpace(description)
	}

	keywords := article.SEOKeywords
	if keywords == "" {
		keywords = fmt.Sprintf("%s, AI in Asia, artificial intelligence", article.Category.Name)
	}

	fullURL := fmt.Sprintf("%s/a/%s", siteURL(), article.Aid)

	imageURL := article.HeroImageURL
	if imageURL == "" {
		imageURL = "/static/img/logo.svg"
	}
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		imageURL = strings.TrimSuffix(siteURL(), "/") + imageURL
	}

	Render(c, http.StatusOK, "article/detail.html", gin.H{
		"Article":        article,
		"PrevArticle":    data.Prev,
		"NextArticle":    data.Next,
		"ArticleContent": utils.RenderArticle(article.Content),
		"Thread":         thread,
		"CommentCount":   services.CountThread(roots),
		"ReactionKinds":  models.ReactionKinds,
		"Title":          article.Title,
		"Description":    description,
		"Keywords":       keywords,
		"FullURL":        fullURL,
		"ImageURL":       imageURL,
		"Author":         article.User.Username,
		"PublishedTime":  article.CreatedAt.Format(time.RFC3339),
		"ModifiedTime":   article.UpdatedAt.Format(time.RFC3339),
	})
}
