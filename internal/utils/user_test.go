package utils

import (
	"testing"
)

func TestGetUserLevelLadder(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, LevelExplorer},
		{49, LevelExplorer},
		{50, LevelEnthusiast},
		{249, LevelEnthusiast},
		{250, LevelExpert},
		{999, LevelExpert},
		{1000, LevelThoughtLeader},
	}
	for _, c := range cases {
		if got := GetUserLevel(c.points); got != c.want {
			t.Errorf("GetUserLevel(%d) = %s, want %s", c.points, got, c.want)
		}
	}
}

func TestBadgeForLevelIsTotal(t *testing.T) {
	for _, level := range []string{LevelExplorer, LevelEnthusiast, LevelExpert, LevelThoughtLeader} {
		badge := BadgeForLevel(level)
		if badge.Label == "" || badge.Class == "" {
			t.Errorf("level %s produced an empty badge", level)
		}
	}

	// Unrecognized input must not fall through unstyled.
	badge := BadgeForLevel("Galactic Overlord")
	if badge.Label != LevelExplorer {
		t.Errorf("unknown level must map to the default badge, got %+v", badge)
	}
}
