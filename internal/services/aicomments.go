package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"aiinasia/internal/db"
	"aiinasia/internal/models"
	"aiinasia/internal/utils"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DefaultGeneratedCount is how many AI comments one generation pass creates.
const DefaultGeneratedCount = 5

// AICommentService owns the AI comment set of an article: generation,
// bulk publish/unpublish, bulk delete. Generation for one article is
// collapsed through singleflight, so a second trigger while a call is in
// flight joins the first instead of firing a duplicate model request.
type AICommentService struct {
	group singleflight.Group
}

var (
	aiCommentService *AICommentService
	aiCommentOnce    sync.Once
)

// GetAICommentService returns the singleton moderation service.
func GetAICommentService() *AICommentService {
	aiCommentOnce.Do(func() {
		aiCommentService = &AICommentService{}
	})
	return aiCommentService
}

// Generate creates a fresh batch of unpublished AI comments for the article.
// Returns how many were inserted.
func (s *AICommentService) Generate(articleID uint) (int, error) {
	v, err, _ := s.group.Do(fmt.Sprintf("generate:%d", articleID), func() (interface{}, error) {
		return s.generate(articleID)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// RegenerateAll deletes the article's AI comments and generates a fresh
// batch. Destructive; the handler gates it behind an explicit confirmation.
func (s *AICommentService) RegenerateAll(articleID uint) (int, error) {
	v, err, _ := s.group.Do(fmt.Sprintf("generate:%d", articleID), func() (interface{}, error) {
		if _, err := s.DeleteAll(articleID); err != nil {
			return 0, err
		}
		return s.generate(articleID)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *AICommentService) generate(articleID uint) (int, error) {
	var article models.Article
	if err := db.DB.First(&article, articleID).Error; err != nil {
		return 0, fmt.Errorf("article %d: %w", articleID, err)
	}

	generated, err := GetLLMService().GenerateComments(article.Title, article.Summary, DefaultGeneratedCount)
	if err != nil {
		return 0, err
	}

	// Backdate the batch across the past two days, oldest first, so the
	// thread reads like it grew organically.
	base := time.Now().Add(-48 * time.Hour)
	step := 48 * time.Hour / time.Duration(len(generated)+1)

	inserted := 0
	for i, g := range generated {
		when := base.Add(time.Duration(i+1)*step + time.Duration(rand.Intn(1800))*time.Second)
		comment := models.Comment{
			Cid:          utils.RandStringBytesMaskImpr(8),
			ArticleID:    articleID,
			AuthorName:   g.AuthorName,
			AuthorHandle: g.AuthorHandle,
			Content:      g.Content,
			IsAI:         true,
			Published:    false,
			CommentDate:  &when,
		}
		if err := db.DB.Create(&comment).Error; err != nil {
			return inserted, fmt.Errorf("insert generated comment: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

func (s *AICommentService) aiSet(articleID uint) *gorm.DB {
	return db.DB.Model(&models.Comment{}).
		Where("article_id = ? AND is_ai = ?", articleID, true)
}

// PublishAll flips every unpublished AI comment of the article to published.
func (s *AICommentService) PublishAll(articleID uint) (int64, error) {
	res := s.aiSet(articleID).Where("published = ?", false).Update("published", true)
	return res.RowsAffected, res.Error
}

// UnpublishAll hides every published AI comment of the article.
func (s *AICommentService) UnpublishAll(articleID uint) (int64, error) {
	res := s.aiSet(articleID).Where("published = ?", true).Update("published", false)
	return res.RowsAffected, res.Error
}

// DeleteAll removes the article's whole AI comment set.
func (s *AICommentService) DeleteAll(articleID uint) (int64, error) {
	res := db.DB.
		Where("article_id = ? AND is_ai = ?", articleID, true).
		Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}

// Counts returns how many AI comments of the article are published and
// unpublished; the moderation badges render straight from these.
func (s *AICommentService) Counts(articleID uint) (published, unpublished int64) {
	s.aiSet(articleID).Where("published = ?", true).Count(&published)
	s.aiSet(articleID).Where("published = ?", false).Count(&unpublished)
	return published, unpublished
}
