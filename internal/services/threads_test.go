package services

import (
	"testing"
	"time"

	"aiinasia/internal/models"
)

func ts(minutes int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func ptr(id uint) *uint {
	return &id
}

func TestOrganizeThreadedNesting(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, Cid: "a", CreatedAt: ts(0)},
		{ID: 2, Cid: "b", ParentID: ptr(1), CreatedAt: ts(10)},
		{ID: 3, Cid: "c", ParentID: ptr(1), CreatedAt: ts(5)},
		{ID: 4, Cid: "d", ParentID: ptr(2), CreatedAt: ts(20)},
		{ID: 5, Cid: "e", CreatedAt: ts(2)},
	}

	roots := OrganizeThreaded(flat)

	if got := CountThread(roots); got != len(flat) {
		t.Fatalf("expected %d nodes in forest, got %d", len(flat), got)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	// Roots sorted chronologically: id 1 (t=0) before id 5 (t=2)
	if roots[0].ID != 1 || roots[1].ID != 5 {
		t.Errorf("unexpected root order: %d, %d", roots[0].ID, roots[1].ID)
	}

	// Replies of 1 sorted ascending: id 3 (t=5) before id 2 (t=10)
	replies := roots[0].Replies
	if len(replies) != 2 || replies[0].ID != 3 || replies[1].ID != 2 {
		t.Fatalf("unexpected reply order under root 1: %+v", replies)
	}

	if len(replies[1].Replies) != 1 || replies[1].Replies[0].ID != 4 {
		t.Errorf("expected comment 4 nested under comment 2")
	}
}

func TestOrganizeThreadedDoesNotMutateInput(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, CreatedAt: ts(0)},
		{ID: 2, ParentID: ptr(1), CreatedAt: ts(1)},
	}

	OrganizeThreaded(flat)

	if flat[0].Replies != nil {
		t.Errorf("input slice was mutated: replies attached to caller's comment")
	}
}

func TestOrganizeThreadedOrphanBecomesRoot(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, CreatedAt: ts(0)},
		{ID: 2, ParentID: ptr(99), CreatedAt: ts(1)}, // parent already deleted
	}

	roots := OrganizeThreaded(flat)
	if len(roots) != 2 {
		t.Fatalf("expected orphan to surface as root, got %d roots", len(roots))
	}
}

func TestOrganizeThreadedSelfParentBecomesRoot(t *testing.T) {
	flat := []models.Comment{
		{ID: 7, ParentID: ptr(7), CreatedAt: ts(0)},
	}

	roots := OrganizeThreaded(flat)
	if len(roots) != 1 || roots[0].ID != 7 {
		t.Fatalf("self-parenting comment must degrade to root, got %+v", roots)
	}
	if len(roots[0].Replies) != 0 {
		t.Errorf("self-parenting comment must not nest under itself")
	}
}

func checkChronological(t *testing.T, nodes []*models.Comment) {
	t.Helper()
	for i := 0; i+1 < len(nodes); i++ {
		if nodes[i].EffectiveDate().After(nodes[i+1].EffectiveDate()) {
			t.Errorf("replies out of order: %d after %d", nodes[i].ID, nodes[i+1].ID)
		}
	}
	for _, n := range nodes {
		checkChronological(t, n.Replies)
	}
}

func TestOrganizeThreadedChronologicalAtEveryDepth(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, CreatedAt: ts(30)},
		{ID: 2, CreatedAt: ts(0)},
		{ID: 3, ParentID: ptr(1), CreatedAt: ts(50)},
		{ID: 4, ParentID: ptr(1), CreatedAt: ts(40)},
		{ID: 5, ParentID: ptr(3), CreatedAt: ts(70)},
		{ID: 6, ParentID: ptr(3), CreatedAt: ts(60)},
	}

	checkChronological(t, OrganizeThreaded(flat))
}

func TestOrganizeThreadedBackdatedDisplayDate(t *testing.T) {
	backdate := ts(-120)
	flat := []models.Comment{
		{ID: 1, CreatedAt: ts(0)},
		// Newer row backdated before comment 1 for display purposes
		{ID: 2, CreatedAt: ts(10), CommentDate: &backdate},
	}

	roots := OrganizeThreaded(flat)
	if roots[0].ID != 2 {
		t.Errorf("backdated comment should sort first, got %d", roots[0].ID)
	}
}

func TestBuildThreadViewDepthGating(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, Cid: "a", CreatedAt: ts(0)},
		{ID: 2, Cid: "b", ParentID: ptr(1), CreatedAt: ts(1)},
		{ID: 3, Cid: "c", ParentID: ptr(2), CreatedAt: ts(2)},
		{ID: 4, Cid: "d", ParentID: ptr(3), CreatedAt: ts(3)},
	}

	nodes := BuildThreadView(OrganizeThreaded(flat), "", nil)

	depth0 := nodes[0]
	depth1 := depth0.Replies[0]
	depth2 := depth1.Replies[0]
	depth3 := depth2.Replies[0]

	for i, n := range []ThreadNode{depth0, depth1, depth2, depth3} {
		if n.Depth != i {
			t.Errorf("expected depth %d, got %d", i, n.Depth)
		}
	}

	if !depth2.CanReply {
		t.Errorf("depth 2 node must still offer a reply")
	}
	if depth3.CanReply {
		t.Errorf("depth 3 node must not offer a reply")
	}
}

func TestBuildThreadViewSingleComposer(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, Cid: "a", CreatedAt: ts(0)},
		{ID: 2, Cid: "b", CreatedAt: ts(1)},
		{ID: 3, Cid: "c", ParentID: ptr(1), CreatedAt: ts(2)},
	}

	nodes := BuildThreadView(OrganizeThreaded(flat), "c", nil)

	open := 0
	var walk func([]ThreadNode)
	walk = func(ns []ThreadNode) {
		for _, n := range ns {
			if n.ComposerOpen {
				open++
				if n.Comment.Cid != "c" {
					t.Errorf("composer open on wrong node %s", n.Comment.Cid)
				}
			}
			walk(n.Replies)
		}
	}
	walk(nodes)

	if open != 1 {
		t.Errorf("exactly one composer may be open, found %d", open)
	}
}

func TestBuildThreadViewSanitizesContent(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, Cid: "a", Content: `<script>alert(1)</script>hello`, CreatedAt: ts(0)},
	}

	nodes := BuildThreadView(OrganizeThreaded(flat), "", nil)
	html := string(nodes[0].ContentHTML)
	if html != "hello" {
		t.Errorf("expected script stripped down to %q, got %q", "hello", html)
	}
}
