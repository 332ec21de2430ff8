package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Garsondee/last-light/internal/game"
)

type runStats struct {
	runIndex  int
	seed      int64
	sessionID string

	survived       bool
	nightsSurvived int
	ticks          int

	firstSpawnTick  int
	firstAttackTick int
	firstHitTick    int
	firstBreachTick int
	deathTick       int

	stats        game.LevelStats
	stateChanges int
	retreatFlips int
	coins        int
}

func main() {
	var runs int
	var nights int
	var seedBase int64
	var seedStep int64
	var ruins int
	var settingsPath string
	var watch bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&nights, "nights", 2, "nights each run must survive")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&ruins, "ruins", 8, "ruins in the generated layout")
	flag.StringVar(&settingsPath, "settings", "", "optional YAML settings file")
	flag.BoolVar(&watch, "watch", false, "render one run live in the terminal")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if nights <= 0 {
		fmt.Println("error: -nights must be > 0")
		os.Exit(2)
	}

	settings := game.DefaultSettings()
	if settingsPath != "" {
		s, err := game.LoadSettings(settingsPath)
		if err != nil {
			log.Fatal(err)
		}
		settings = s
	}

	if watch {
		if err := watchRun(settings, seedBase, nights, ruins); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("=== Headless Survival Report ===\n")
	fmt.Printf("runs=%d nights=%d seed_base=%d seed_step=%d ruins=%d\n\n", runs, nights, seedBase, seedStep, ruins)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runSurvival(i+1, seed, settings, nights, ruins)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

// newSim builds the standard survival scenario: generated layout, turret
// defender, first night starting immediately.
func newSim(settings game.Settings, seed int64, ruins int) *game.TestSim {
	return game.NewTestSim(
		game.WithSettings(func(s *game.Settings) { *s = settings }),
		game.WithSeed(seed),
		game.WithLayout(ruins),
		game.WithInput(game.TurretInput{}),
		game.WithNight(),
	)
}

// maxRunTicks bounds a run at the length of the requested nights and the
// days between them, plus slack.
func maxRunTicks(s game.Settings, nights int) int {
	sec := float64(nights)*(s.NightLength+s.DayLength) + s.DayLength
	return int(sec*60) + 60
}

// finished reports whether the run is over: the player died or daybreak
// came after the last requested night.
func finished(lv *game.Level, nights int) bool {
	return lv.GameOver || (lv.IsDay() && lv.Cycle.Night() >= nights)
}

func runSurvival(runIndex int, seed int64, settings game.Settings, nights, ruins int) runStats {
	ts := newSim(settings, seed, ruins)
	ts.RunUntil(func(ts *game.TestSim) bool { return finished(ts.Level, nights) }, maxRunTicks(settings, nights))
	return collect(runIndex, seed, ts)
}

func collect(runIndex int, seed int64, ts *game.TestSim) runStats {
	lv := ts.Level
	sl := ts.SimLog
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		sessionID:       lv.SessionID,
		survived:        !lv.GameOver,
		nightsSurvived:  nightsSurvived(lv),
		ticks:           lv.Tick,
		firstSpawnTick:  sl.FirstTick("spawn", "zombie", ""),
		firstAttackTick: sl.FirstTick("state", "change", "→ attacking"),
		firstHitTick:    sl.FirstTick("combat", "shot_hit", ""),
		firstBreachTick: sl.FirstTick("block", "destroyed", ""),
		deathTick:       -1,
		stats:           lv.Stats,
		stateChanges:    sl.CountCategory("state", "change"),
		retreatFlips:    countContaining(sl.Filter("state", "change"), "→ retreating"),
		coins:           lv.Wallet.Coins(),
	}
	if lv.GameOver {
		rs.deathTick = lv.Tick
	}
	return rs
}

// nightsSurvived counts nights that ended in daybreak.
func nightsSurvived(lv *game.Level) int {
	n := lv.Cycle.Night()
	if !lv.IsDay() {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

func countContaining(entries []game.SimLogEntry, substr string) int {
	n := 0
	for _, e := range entries {
		if strings.Contains(e.Value, substr) {
			n++
		}
	}
	return n
}

func accuracy(fired, hit int) float64 {
	if fired <= 0 {
		return 0
	}
	return float64(hit) / float64(fired) * 100
}

func printRun(rs runStats) {
	outcome := "survived"
	if !rs.survived {
		outcome = fmt.Sprintf("died at T=%d", rs.deathTick)
	}
	st := rs.stats
	fmt.Printf("--- Run %d (seed=%d session=%s) ---\n", rs.runIndex, rs.seed, rs.sessionID)
	fmt.Printf("outcome: %s nights_survived=%d ticks=%d coins=%d\n", outcome, rs.nightsSurvived, rs.ticks, rs.coins)
	fmt.Printf("phase_markers: first_spawn=%d first_attack=%d first_hit=%d first_breach=%d\n",
		rs.firstSpawnTick, rs.firstAttackTick, rs.firstHitTick, rs.firstBreachTick)
	fmt.Printf("zombies: spawned=%d kills=%d retreated=%d hits_landed=%d state_changes=%d retreat_orders=%d\n",
		st.Spawned, st.Kills, st.Retreated, st.ZombieHits, rs.stateChanges, rs.retreatFlips)
	fmt.Printf("player: shots=%d hits=%d accuracy=%.1f%% damage_taken=%.0f blocks_built=%d blocks_lost=%d\n\n",
		st.ShotsFired, st.ShotsHit, accuracy(st.ShotsFired, st.ShotsHit), st.DamageTaken, st.BlocksBuilt, st.BlocksLost)
}

type aggregate struct {
	runs          int
	survivors     int
	avgNights     float64
	avgKills      float64
	avgSpawned    float64
	avgDamage     float64
	avgAccuracy   float64
	avgFirstSpawn string
	avgDeathTick  string
}

func summarise(all []runStats) aggregate {
	agg := aggregate{runs: len(all)}
	if len(all) == 0 {
		agg.avgFirstSpawn, agg.avgDeathTick = "n/a", "n/a"
		return agg
	}
	var nights, kills, spawned int
	var damage, acc float64
	var spawnTicks, deathTicks []int
	for _, rs := range all {
		if rs.survived {
			agg.survivors++
		}
		nights += rs.nightsSurvived
		kills += rs.stats.Kills
		spawned += rs.stats.Spawned
		damage += rs.stats.DamageTaken
		acc += accuracy(rs.stats.ShotsFired, rs.stats.ShotsHit)
		if rs.firstSpawnTick >= 0 {
			spawnTicks = append(spawnTicks, rs.firstSpawnTick)
		}
		if rs.deathTick >= 0 {
			deathTicks = append(deathTicks, rs.deathTick)
		}
	}
	n := float64(len(all))
	agg.avgNights = float64(nights) / n
	agg.avgKills = float64(kills) / n
	agg.avgSpawned = float64(spawned) / n
	agg.avgDamage = damage / n
	agg.avgAccuracy = acc / n
	agg.avgFirstSpawn = avgTickString(spawnTicks)
	agg.avgDeathTick = avgTickString(deathTicks)
	return agg
}

func printAggregate(all []runStats) {
	agg := summarise(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d survivors=%d survival_rate=%.0f%%\n", agg.runs, agg.survivors, avg(agg.survivors*100, agg.runs))
	fmt.Printf("avg_per_run: nights=%.2f kills=%.1f spawned=%.1f damage_taken=%.0f accuracy=%.1f%%\n",
		agg.avgNights, agg.avgKills, agg.avgSpawned, agg.avgDamage, agg.avgAccuracy)
	fmt.Printf("phase_marker_avg_ticks: first_spawn=%s death=%s\n", agg.avgFirstSpawn, agg.avgDeathTick)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
