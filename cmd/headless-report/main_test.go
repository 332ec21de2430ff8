package main

import (
	"testing"

	"github.com/Garsondee/last-light/internal/game"
)

func TestAccuracy(t *testing.T) {
	if got := accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 accuracy with no shots, got %.1f", got)
	}
	if got := accuracy(8, 2); got != 25 {
		t.Fatalf("expected 25%% accuracy, got %.1f", got)
	}
}

func TestSummarise_AveragesAcrossRuns(t *testing.T) {
	all := []runStats{
		{survived: true, nightsSurvived: 2, firstSpawnTick: 90, deathTick: -1,
			stats: game.LevelStats{Kills: 10, Spawned: 12, ShotsFired: 20, ShotsHit: 10}},
		{survived: false, nightsSurvived: 0, firstSpawnTick: 110, deathTick: 3000,
			stats: game.LevelStats{Kills: 4, Spawned: 8, ShotsFired: 10, ShotsHit: 0, DamageTaken: 100}},
	}
	agg := summarise(all)
	if agg.runs != 2 || agg.survivors != 1 {
		t.Fatalf("expected runs=2 survivors=1, got runs=%d survivors=%d", agg.runs, agg.survivors)
	}
	if agg.avgNights != 1 || agg.avgKills != 7 || agg.avgSpawned != 10 {
		t.Fatalf("unexpected averages: nights=%.2f kills=%.1f spawned=%.1f", agg.avgNights, agg.avgKills, agg.avgSpawned)
	}
	if agg.avgAccuracy != 25 {
		t.Fatalf("expected mean accuracy 25, got %.1f", agg.avgAccuracy)
	}
	if agg.avgFirstSpawn != "100.0" || agg.avgDeathTick != "3000.0" {
		t.Fatalf("unexpected tick markers: spawn=%s death=%s", agg.avgFirstSpawn, agg.avgDeathTick)
	}
}

func TestSummarise_Empty(t *testing.T) {
	agg := summarise(nil)
	if agg.runs != 0 || agg.avgFirstSpawn != "n/a" {
		t.Fatalf("unexpected empty aggregate: %+v", agg)
	}
}

func TestRunSurvival_ShortNightIsDeterministic(t *testing.T) {
	s := game.DefaultSettings()
	s.GridWidth, s.GridHeight = 20, 14
	s.NightLength = 6
	s.DayLength = 4
	s.SpawnInterval = 0.5
	s.MaxZombies = 6

	a := runSurvival(1, 7, s, 1, 2)
	b := runSurvival(1, 7, s, 1, 2)
	if a.ticks != b.ticks || a.stats != b.stats || a.survived != b.survived {
		t.Fatalf("same seed produced different runs:\n%+v\n%+v", a.stats, b.stats)
	}
	if a.stats.Spawned == 0 {
		t.Fatalf("expected zombies to spawn during the night")
	}
	if a.ticks > maxRunTicks(s, 1) {
		t.Fatalf("run exceeded its tick budget: %d", a.ticks)
	}
	if a.survived && a.nightsSurvived != 1 {
		t.Fatalf("survivor should have completed 1 night, got %d", a.nightsSurvived)
	}
}
