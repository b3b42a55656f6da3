package utils

import (
	"time"
)

// Member levels, keyed off the lifetime point balance.
const (
	LevelExplorer      = "Explorer"
	LevelEnthusiast    = "Enthusiast"
	LevelExpert        = "Expert"
	LevelThoughtLeader = "Thought Leader"
)

// LevelBadge describes how a member level renders next to a comment.
type LevelBadge struct {
	Label string
	Icon  string
	Class string // CSS class for the badge pill
}

// GetUserLevel maps a point balance to a member level.
func GetUserLevel(points int) string {
	switch {
	case points >= 1000:
		return LevelThoughtLeader
	case points >= 250:
		return LevelExpert
	case points >= 50:
		return LevelEnthusiast
	default:
		return LevelExplorer
	}
}

// BadgeForLevel is total over any input string: unrecognized levels get the
// Explorer badge instead of falling through unstyled.
func BadgeForLevel(level string) LevelBadge {
	switch level {
	case LevelThoughtLeader:
		return LevelBadge{Label: LevelThoughtLeader, Icon: "🏆", Class: "badge-gold"}
	case LevelExpert:
		return LevelBadge{Label: LevelExpert, Icon: "💎", Class: "badge-purple"}
	case LevelEnthusiast:
		return LevelBadge{Label: LevelEnthusiast, Icon: "🚀", Class: "badge-blue"}
	case LevelExplorer:
		return LevelBadge{Label: LevelExplorer, Icon: "🌱", Class: "badge-green"}
	default:
		return LevelBadge{Label: LevelExplorer, Icon: "🌱", Class: "badge-green"}
	}
}

// GetDaysSinceJoined returns whole days since the account was created.
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
