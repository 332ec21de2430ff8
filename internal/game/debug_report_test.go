package game

import (
	"strings"
	"testing"
)

func TestASCIIMap_Symbols(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(8, 5, 16),
		WithNoSpawns(),
		WithBlocked(GridPos{X: 0, Y: 0}),
		WithPlayerAt(4, 2),
		WithBlock(1, 0),
		WithZombie(6, 3),
		WithZombie(4, 2),
	)
	lv := ts.Level
	lv.Registry.Add(NewCollectable(lv.Config.GridToWorldCentered(GridPos{X: 2, Y: 4}), 1))
	ts.Zombie(0).state = ZombieWaitingForNight

	rows := ASCIIMap(lv)
	want := []string{
		"#b......",
		"........",
		"....@...",
		"......z.",
		"..$.....",
	}
	for y, w := range want {
		if got := string(rows[y]); got != w {
			t.Fatalf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestDebugReport_Sections(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(12, 8, 16),
		WithNoSpawns(),
		WithNight(),
		WithZombie(1, 1),
	)
	ts.RunTicks(5)
	r := ts.Report()
	for _, want := range []string{
		"Last Light debug report",
		"session=" + ts.Level.SessionID,
		"Summary at T=005 (night, night 1)",
		"zombies:",
		"Z2",
		"chasing",
		"events:",
		"level",
	} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}

func TestSimLog_FilterAndFirstTick(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "Z2", "state", "change", "chasing → attacking", 0)
	sl.Add(3, "Z2", "combat", "hit", "P", 10)
	sl.Add(4, "Z3", "combat", "whiff", "P", 0)
	sl.AddVerbose(5, "Z2", "move", "position", "(1,1)", 0)

	if len(sl.Entries()) != 3 {
		t.Fatalf("entries = %d, verbose entry leaked", len(sl.Entries()))
	}
	if n := len(sl.Filter("combat", "")); n != 2 {
		t.Fatalf("combat entries = %d", n)
	}
	if n := len(sl.FilterEntity("Z2")); n != 2 {
		t.Fatalf("Z2 entries = %d", n)
	}
	if got := sl.FirstTick("combat", "whiff", ""); got != 4 {
		t.Fatalf("first whiff tick = %d", got)
	}
	if sl.FirstTick("combat", "hit", "Z9") != -1 || sl.HasEntry("state", "change", "retreating") {
		t.Fatal("unexpected match")
	}
	if !strings.Contains(sl.Format(), "[T=003] Z2") {
		t.Fatalf("format:\n%s", sl.Format())
	}

	var nilLog *SimLog
	nilLog.Add(1, "P", "x", "y", "z", 0)
	if nilLog.Verbose() {
		t.Fatal("nil log should not be verbose")
	}
}
