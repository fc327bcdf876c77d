package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownPlayerStartsAtFloor(t *testing.T) {
	e := NewEngine(nil, nil)
	assert.EqualValues(t, Floor, e.GetScore("nobody"))
}

func TestSetScoreClampsToFloor(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetScore("alice", 70)
	assert.EqualValues(t, Floor, e.GetScore("alice"))

	e.SetScore("alice", 350)
	assert.EqualValues(t, 350, e.GetScore("alice"))
}

func TestEvenMatchWin(t *testing.T) {
	e := NewEngine(nil, nil)
	e.RecordResult("alice", "bob", "alice")

	// Both start at the floor; the winner takes 10, the loser would drop
	// below the floor and is clamped.
	assert.EqualValues(t, 110, e.GetScore("alice"))
	assert.EqualValues(t, Floor, e.GetScore("bob"))
}

func TestEvenMatchDrawChangesNothing(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetScore("alice", 300)
	e.SetScore("bob", 300)
	e.RecordResult("alice", "bob", "")

	assert.EqualValues(t, 300, e.GetScore("alice"))
	assert.EqualValues(t, 300, e.GetScore("bob"))
}

func TestUpsetWinPaysTheUnderdog(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetScore("alice", 100)
	e.SetScore("bob", 1000)
	e.RecordResult("alice", "bob", "alice")

	// A 900-point gap maps to the 20-point cap: the underdog takes all of
	// it and the favourite loses nothing beyond the cap complement.
	assert.EqualValues(t, 120, e.GetScore("alice"))
	assert.EqualValues(t, 1000, e.GetScore("bob"))
}

func TestExpectedWinPaysAlmostNothing(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetScore("alice", 1000)
	e.SetScore("bob", 100)
	e.RecordResult("alice", "bob", "alice")

	assert.EqualValues(t, 1000, e.GetScore("alice"))
	assert.EqualValues(t, Floor, e.GetScore("bob"))
}

func TestDrawAgainstStrongerOpponent(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetScore("alice", 400)
	e.SetScore("bob", 100)
	e.RecordResult("alice", "bob", "")

	// A 300-point gap maps to 17: the stronger side bleeds 7 on a draw.
	assert.EqualValues(t, 393, e.GetScore("alice"))
	assert.EqualValues(t, 107, e.GetScore("bob"))
}

func TestScoreChangeTable(t *testing.T) {
	cases := []struct {
		name       string
		difference int64
		result     result
		changeA    int64
		changeB    int64
	}{
		{"even win", 0, resultWin, 10, -10},
		{"even loss", 0, resultLoss, -10, 10},
		{"even draw", 0, resultDraw, 0, 0},
		{"edge of even band", 17, resultWin, 10, -10},
		{"just past even band", 18, resultWin, 9, -11},
		{"underdog win at 18", -18, resultWin, 11, -9},
		{"gap 53 win as underdog", -53, resultWin, 12, -8},
		{"gap 89 win as underdog", -89, resultWin, 13, -7},
		{"gap 127 win as underdog", -127, resultWin, 14, -6},
		{"gap 169 win as underdog", -169, resultWin, 15, -5},
		{"gap 215 win as underdog", -215, resultWin, 16, -4},
		{"gap 270 win as underdog", -270, resultWin, 17, -3},
		{"gap 339 win as underdog", -339, resultWin, 18, -2},
		{"gap 437 win as underdog", -437, resultWin, 19, -1},
		{"gap 637 win as underdog", -637, resultWin, 20, 0},
		{"favourite loss at cap", 637, resultLoss, 0, 20},
		{"underdog loss at cap", -637, resultLoss, -20, 0},
		{"draw across cap gap", 637, resultDraw, -10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := scoreChange(tc.difference, tc.result)
			assert.EqualValues(t, tc.changeA, a, "changeA")
			assert.EqualValues(t, tc.changeB, b, "changeB")
		})
	}
}

func TestUpdateHookFires(t *testing.T) {
	e := NewEngine(nil, nil)
	var updates []ScoreUpdate
	e.SetUpdateHook(func(u ScoreUpdate) { updates = append(updates, u) })

	e.RecordResult("alice", "bob", "alice")

	assert.Len(t, updates, 2)
	assert.Equal(t, "alice", updates[0].Player)
	assert.EqualValues(t, 110, updates[0].Score)
	assert.Equal(t, "bob", updates[1].Player)
	assert.EqualValues(t, Floor, updates[1].Score)
}
