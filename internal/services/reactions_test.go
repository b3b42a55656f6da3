package services

import (
	"testing"

	"aiinasia/internal/db"
	"aiinasia/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB swaps the package-level connection for an in-memory sqlite
// database scoped to one test.
func newTestDB(t *testing.T) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Comment{},
		&models.Reaction{},
		&models.PointLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	prev := db.DB
	db.DB = conn
	t.Cleanup(func() { db.DB = prev })
}

func TestToggleReactionSymmetry(t *testing.T) {
	newTestDB(t)

	comment := models.Comment{Cid: "c1", ArticleID: 1, Content: "hi", Approved: true}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	added, err := ToggleReaction(comment.ID, 7, models.ReactionApprove)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !added {
		t.Fatal("first toggle must report the reaction as applied")
	}

	summaries, err := ReactionSummaries([]uint{comment.ID}, 7)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	s := summaries[comment.ID]
	if s.Count(models.ReactionApprove) != 1 {
		t.Errorf("expected count 1 after toggle on, got %d", s.Count(models.ReactionApprove))
	}
	if !s.Reacted(models.ReactionApprove) {
		t.Errorf("viewer's own reaction missing from summary")
	}

	added, err = ToggleReaction(comment.ID, 7, models.ReactionApprove)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if added {
		t.Fatal("second identical toggle must remove the reaction")
	}

	summaries, err = ReactionSummaries([]uint{comment.ID}, 7)
	if err != nil {
		t.Fatalf("summaries after toggle off: %v", err)
	}
	s = summaries[comment.ID]
	if s.Count(models.ReactionApprove) != 0 {
		t.Errorf("expected count 0 after toggle off, got %d", s.Count(models.ReactionApprove))
	}
	if s.Reacted(models.ReactionApprove) {
		t.Errorf("removed reaction still reported as the viewer's own")
	}
}

func TestToggleReactionKindsIndependent(t *testing.T) {
	newTestDB(t)

	comment := models.Comment{Cid: "c2", ArticleID: 1, Content: "hi", Approved: true}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	for _, kind := range models.ReactionKinds {
		if _, err := ToggleReaction(comment.ID, 7, kind); err != nil {
			t.Fatalf("toggle %s: %v", kind, err)
		}
	}
	// Removing one kind must leave the others standing
	if _, err := ToggleReaction(comment.ID, 7, models.ReactionHeart); err != nil {
		t.Fatalf("toggle heart off: %v", err)
	}

	summaries, err := ReactionSummaries([]uint{comment.ID}, 7)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	s := summaries[comment.ID]
	if s.Count(models.ReactionApprove) != 1 || s.Count(models.ReactionInsight) != 1 {
		t.Errorf("unrelated kinds were disturbed: %+v", s.Counts)
	}
	if s.Count(models.ReactionHeart) != 0 {
		t.Errorf("heart should be toggled off, got %d", s.Count(models.ReactionHeart))
	}
}

func TestToggleReactionRejectsUnknownKind(t *testing.T) {
	newTestDB(t)

	if _, err := ToggleReaction(1, 7, "sparkle"); err == nil {
		t.Fatal("expected an error for an unknown reaction kind")
	}
}

func TestReactionSummariesAnonymousViewer(t *testing.T) {
	newTestDB(t)

	comment := models.Comment{Cid: "c3", ArticleID: 1, Content: "hi", Approved: true}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	for _, uid := range []uint{7, 8} {
		if _, err := ToggleReaction(comment.ID, uid, models.ReactionInsight); err != nil {
			t.Fatalf("toggle for user %d: %v", uid, err)
		}
	}

	summaries, err := ReactionSummaries([]uint{comment.ID}, 0)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	s := summaries[comment.ID]
	if s.Count(models.ReactionInsight) != 2 {
		t.Errorf("expected aggregate count 2, got %d", s.Count(models.ReactionInsight))
	}
	if len(s.Mine) != 0 {
		t.Errorf("anonymous viewer must have no own reactions, got %v", s.Mine)
	}
}
