package game

import "fmt"

// Phase is the half of the day/night cycle the level is in.
type Phase uint8

const (
	PhaseDay Phase = iota
	PhaseNight
)

func (p Phase) String() string {
	if p == PhaseNight {
		return "night"
	}
	return "day"
}

// DayNightCycle flips between day and night on a timer and moves zombies
// between their night and day behaviours.
type DayNightCycle struct {
	phase   Phase
	elapsed float64
	night   int
}

// NewDayNightCycle starts in day unless atNight is set.
func NewDayNightCycle(atNight bool) *DayNightCycle {
	c := &DayNightCycle{}
	if atNight {
		c.phase = PhaseNight
		c.night = 1
	}
	return c
}

// Phase returns the current phase.
func (c *DayNightCycle) Phase() Phase { return c.phase }

// Night returns how many nights have started.
func (c *DayNightCycle) Night() int { return c.night }

// Remaining returns the seconds left in the current phase.
func (c *DayNightCycle) Remaining(s Settings) float64 {
	r := c.length(s) - c.elapsed
	if r < 0 {
		return 0
	}
	return r
}

func (c *DayNightCycle) length(s Settings) float64 {
	if c.phase == PhaseNight {
		return s.NightLength
	}
	return s.DayLength
}

// Update advances the timer and flips the phase when it runs out.
func (c *DayNightCycle) Update(lv *Level, dt float64) {
	c.elapsed += dt
	if c.elapsed < c.length(lv.Settings()) {
		return
	}
	c.elapsed = 0
	if c.phase == PhaseDay {
		c.SetPhase(lv, PhaseNight)
	} else {
		c.SetPhase(lv, PhaseDay)
	}
}

// SetPhase switches phase immediately. Nightfall turns every zombie that is
// waiting or still leaving back onto the player; daybreak sends every active
// zombie off the map.
func (c *DayNightCycle) SetPhase(lv *Level, p Phase) {
	if p == c.phase {
		return
	}
	c.phase = p
	c.elapsed = 0
	switch p {
	case PhaseNight:
		c.night++
		lv.Notify.PlaySound(SoundNightfall)
		for _, z := range lv.Registry.Zombies() {
			switch z.State() {
			case ZombieWaitingForNight, ZombieRetreating, ZombieWandering:
				z.setState(lv, ZombieChasingPlayer)
			}
		}
	case PhaseDay:
		lv.Notify.PlaySound(SoundDaybreak)
		for _, z := range lv.Registry.Zombies() {
			if z.State() != ZombieWaitingForNight {
				z.setState(lv, ZombieRetreating)
			}
		}
	}
	lv.event("--", "cycle", "phase", fmt.Sprintf("%s %d", p, c.night), float64(c.night))
}

// Spawner brings zombies in from the map edge during the night.
type Spawner struct {
	timer float64
}

// Update spawns at most one zombie per interval while it is night and the
// population is under the cap.
func (sp *Spawner) Update(lv *Level, dt float64) {
	if lv.IsDay() {
		sp.timer = 0
		return
	}
	s := lv.Settings()
	sp.timer += dt
	if sp.timer < s.SpawnInterval {
		return
	}
	sp.timer = 0
	if lv.Registry.CountKind(KindZombie) >= s.MaxZombies {
		return
	}
	if p, ok := sp.pickEdgeTile(lv); ok {
		lv.AddZombie(lv.Config.GridToWorldCentered(p))
	}
}

// pickEdgeTile chooses a random free tile on the map border.
func (sp *Spawner) pickEdgeTile(lv *Level) (GridPos, bool) {
	cfg := lv.Config
	for tries := 0; tries < 32; tries++ {
		edge := Edge(lv.Rng.Intn(int(edgeCount)))
		src := RetreatSources(cfg, edge)
		p := src[lv.Rng.Intn(len(src))]
		t := lv.Grid.At(p)
		if t != nil && t.State == TileAvailable && t.Ref == NoEntity {
			return p, true
		}
	}
	return GridPos{}, false
}
