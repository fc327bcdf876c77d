package game

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// newTestRegistry returns a registry with no DB or Redis mirror and a
// controllable clock.
func newTestRegistry(t *testing.T) (*GameRegistry, *time.Time) {
	t.Helper()
	r := NewGameRegistry(nil, nil)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func mustCreate(t *testing.T, r *GameRegistry, sender string, turnTime, stake int64) Game {
	t.Helper()
	g, err := r.Create(sender, "", turnTime, false, stake)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return g
}

func mustJoin(t *testing.T, r *GameRegistry, gameID, sender string, stake int64) Game {
	t.Helper()
	g, err := r.Join(gameID, sender, "", stake)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	return g
}

func TestCreateRejectsShortTurnTime(t *testing.T) {
	r, _ := newTestRegistry(t)
	if _, err := r.Create("alice", "", 4, false, 0); !errors.Is(err, ErrInvalidTurnTime) {
		t.Fatalf("Create(turnTime=4) err = %v, want ErrInvalidTurnTime", err)
	}
	if _, err := r.Create("alice", "", 5, false, 0); err != nil {
		t.Fatalf("Create(turnTime=5) err = %v, want nil", err)
	}
}

func TestCreateFreeGameGivesCreatorTheMove(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 0)

	if g.NextPlayer != "alice" {
		t.Errorf("NextPlayer = %q, want creator", g.NextPlayer)
	}
	if g.Pot != 0 || g.Stake != 0 {
		t.Errorf("Pot/Stake = %d/%d, want 0/0", g.Pot, g.Stake)
	}
}

func TestCreateStakedGameLeavesTurnUnassigned(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 500)

	if g.NextPlayer != "" {
		t.Errorf("NextPlayer = %q, want unassigned", g.NextPlayer)
	}
	if g.Stake != 500 {
		t.Errorf("Stake = %d, want 500", g.Stake)
	}
	if g.Pot != 0 {
		t.Errorf("Pot = %d before the game is matched, want 0", g.Pot)
	}
}

func TestJoinStakedGame(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 500)

	joined := mustJoin(t, r, g.ID, "bob", 500)
	if joined.Player2 != "bob" {
		t.Errorf("Player2 = %q, want bob", joined.Player2)
	}
	if joined.Pot != 1000 {
		t.Errorf("Pot = %d, want 1000", joined.Pot)
	}
	// The unassigned first move goes to the creator once matched.
	if joined.NextPlayer != "alice" {
		t.Errorf("NextPlayer = %q, want alice", joined.NextPlayer)
	}
}

func TestJoinFreeGameFlipsTurnToJoiner(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 0)

	joined := mustJoin(t, r, g.ID, "bob", 0)
	if joined.NextPlayer != "bob" {
		t.Errorf("NextPlayer = %q, want joiner", joined.NextPlayer)
	}
	if joined.Pot != 0 {
		t.Errorf("Pot = %d, want 0", joined.Pot)
	}
}

func TestJoinRejections(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 500)

	if _, err := r.Join("missing", "bob", "", 500); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("join unknown game err = %v, want ErrGameNotFound", err)
	}
	if _, err := r.Join(g.ID, "alice", "", 500); !errors.Is(err, ErrOwnGame) {
		t.Errorf("join own game err = %v, want ErrOwnGame", err)
	}
	if _, err := r.Join(g.ID, "bob", "", 499); !errors.Is(err, ErrStakeMismatch) {
		t.Errorf("join with wrong stake err = %v, want ErrStakeMismatch", err)
	}
	// A failed join must leave the seat empty.
	if got, _ := r.Get(g.ID); got.Player2 != "" {
		t.Fatalf("Player2 = %q after failed join, want empty", got.Player2)
	}

	mustJoin(t, r, g.ID, "bob", 500)
	if _, err := r.Join(g.ID, "carol", "", 500); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("join full game err = %v, want ErrAlreadyJoined", err)
	}
}

func TestOpenGameListOrdering(t *testing.T) {
	r, _ := newTestRegistry(t)
	g1 := mustCreate(t, r, "alice", 60, 0)
	g2 := mustCreate(t, r, "bob", 60, 0)
	g3 := mustCreate(t, r, "carol", 60, 0)

	if got, want := r.OpenGameIDs(), []string{g3.ID, g2.ID, g1.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("OpenGameIDs() = %v, want %v", got, want)
	}

	// Joining removes the game from the open list but not the player lists.
	mustJoin(t, r, g2.ID, "dave", 0)
	if got, want := r.OpenGameIDs(), []string{g3.ID, g1.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("OpenGameIDs() after join = %v, want %v", got, want)
	}
	if got, want := r.GamesOfPlayer("bob"), []string{g2.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("GamesOfPlayer(bob) = %v, want %v", got, want)
	}
	if got, want := r.GamesOfPlayer("dave"), []string{g2.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("GamesOfPlayer(dave) = %v, want %v", got, want)
	}
}

func TestGamesOfPlayerNewestFirst(t *testing.T) {
	r, _ := newTestRegistry(t)
	g1 := mustCreate(t, r, "alice", 60, 0)
	g2 := mustCreate(t, r, "alice", 60, 0)

	if got, want := r.GamesOfPlayer("alice"), []string{g2.ID, g1.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("GamesOfPlayer = %v, want %v", got, want)
	}
	if got := r.GamesOfPlayer("stranger"); len(got) != 0 {
		t.Fatalf("GamesOfPlayer(stranger) = %v, want empty", got)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	r, _ := newTestRegistry(t)
	g := mustCreate(t, r, "alice", 60, 0)

	snap, err := r.Get(g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	snap.Player1 = "mallory"

	again, _ := r.Get(g.ID)
	if again.Player1 != "alice" {
		t.Fatal("mutating a snapshot leaked into the registry")
	}

	if _, err := r.Get("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrGameNotFound", err)
	}
}

func TestCounts(t *testing.T) {
	r, _ := newTestRegistry(t)
	g1 := mustCreate(t, r, "alice", 60, 0)
	mustCreate(t, r, "bob", 60, 0)
	mustJoin(t, r, g1.ID, "carol", 0)

	open, total := r.Counts()
	if open != 1 || total != 2 {
		t.Fatalf("Counts() = (%d, %d), want (1, 2)", open, total)
	}
}

func TestEventHookSeesOrderedSequence(t *testing.T) {
	r, _ := newTestRegistry(t)
	var seqs []uint64
	var types []EventType
	r.SetEventHook(func(ev Event) {
		seqs = append(seqs, ev.Seq)
		types = append(types, ev.Type)
	})

	g := mustCreate(t, r, "alice", 60, 0)
	mustJoin(t, r, g.ID, "bob", 0)

	if want := []EventType{EventGameCreated, EventGameJoined}; !reflect.DeepEqual(types, want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] != seqs[i-1]+1 {
			t.Fatalf("event seqs not contiguous: %v", seqs)
		}
	}
}
