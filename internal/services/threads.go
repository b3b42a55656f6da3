package services

import (
	"html/template"
	"sort"

	"aiinasia/internal/models"
	"aiinasia/internal/utils"
)

// MaxReplyDepth is the deepest level at which a new reply may be composed.
// Existing deeper replies still render, they just lose the reply affordance.
const MaxReplyDepth = 3

// hardDepthLimit caps the render walk regardless of what the data claims.
const hardDepthLimit = 32

// OrganizeThreaded converts a flat comment list into a forest of root
// comments with nested Replies, sorted by effective date ascending at every
// level. Pure: the caller's slice is never mutated. Comments whose parent is
// missing from the set, or which list themselves as their own parent, degrade
// to root-level rather than being dropped.
func OrganizeThreaded(flat []models.Comment) []*models.Comment {
	lookup := make(map[uint]*models.Comment, len(flat))
	for i := range flat {
		clone := flat[i]
		clone.Replies = []*models.Comment{}
		lookup[clone.ID] = &clone
	}

	roots := make([]*models.Comment, 0, len(flat))
	for i := range flat {
		node := lookup[flat[i].ID]
		if pid := flat[i].ParentID; pid != nil && *pid != flat[i].ID {
			if parent, ok := lookup[*pid]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortThread(roots)
	return roots
}

func sortThread(nodes []*models.Comment) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].EffectiveDate().Before(nodes[j].EffectiveDate())
	})
	for _, n := range nodes {
		sortThread(n.Replies)
	}
}

// CountThread returns the total number of nodes in a forest.
func CountThread(nodes []*models.Comment) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountThread(n.Replies)
	}
	return total
}

// ThreadNode is one renderable comment in a thread.
type ThreadNode struct {
	Comment      *models.Comment
	ContentHTML  template.HTML
	Depth        int
	CanReply     bool
	ComposerOpen bool
	Badge        utils.LevelBadge
	Reactions    ReactionSummary
	Replies      []ThreadNode
}

// BuildThreadView walks a comment forest into render nodes. activeComposer is
// the Cid of the single comment whose reply composer is open ("" for none);
// it is one shared value for the whole tree, so opening a composer anywhere
// closes any other. reactions may be nil. The root call starts at depth 0 and
// each level passes depth+1.
func BuildThreadView(roots []*models.Comment, activeComposer string, reactions map[uint]ReactionSummary) []ThreadNode {
	return buildNodes(roots, 0, activeComposer, reactions)
}

func buildNodes(comments []*models.Comment, depth int, activeComposer string, reactions map[uint]ReactionSummary) []ThreadNode {
	if depth >= hardDepthLimit {
		return nil
	}

	nodes := make([]ThreadNode, 0, len(comments))
	for _, c := range comments {
		level := ""
		if c.User != nil {
			level = utils.GetUserLevel(c.User.Points)
		}
		node := ThreadNode{
			Comment:      c,
			ContentHTML:  template.HTML(utils.SanitizeComment(c.Content)),
			Depth:        depth,
			CanReply:     depth < MaxReplyDepth,
			ComposerOpen: activeComposer != "" && c.Cid == activeComposer,
			Badge:        utils.BadgeForLevel(level),
		}
		if reactions != nil {
			node.Reactions = reactions[c.ID]
		}
		node.Replies = buildNodes(c.Replies, depth+1, activeComposer, reactions)
		nodes = append(nodes, node)
	}
	return nodes
}
