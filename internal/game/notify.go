package game

// Sound identifies a one-shot audio cue.
type Sound uint8

const (
	SoundShot Sound = iota
	SoundZombieAttack
	SoundZombieDeath
	SoundPlayerHurt
	SoundPickup
	SoundBlockPlaced
	SoundBlockBroken
	SoundNightfall
	SoundDaybreak
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundZombieAttack:
		return "zombie_attack"
	case SoundZombieDeath:
		return "zombie_death"
	case SoundPlayerHurt:
		return "player_hurt"
	case SoundPickup:
		return "pickup"
	case SoundBlockPlaced:
		return "block_placed"
	case SoundBlockBroken:
		return "block_broken"
	case SoundNightfall:
		return "nightfall"
	case SoundDaybreak:
		return "daybreak"
	default:
		return "unknown"
	}
}

// EffectKind identifies a transient visual effect.
type EffectKind uint8

const (
	EffectTracer EffectKind = iota // From → To line
	EffectBlood                    // splash at From
	EffectDeath                    // larger burst at From
	EffectDebris                   // block fragments at From
	effectKindCount
)

// Effect is a fire-and-forget request to draw something briefly.
type Effect struct {
	Kind EffectKind
	From WorldPos
	To   WorldPos
}

// Notifier receives presentation events from gameplay. Implementations must
// return immediately.
type Notifier interface {
	PlaySound(s Sound)
	SpawnEffect(e Effect)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) PlaySound(Sound)    {}
func (NopNotifier) SpawnEffect(Effect) {}

// Notifiers fans a notification out to several collaborators. Nil entries
// are skipped.
type Notifiers []Notifier

func (ns Notifiers) PlaySound(s Sound) {
	for _, n := range ns {
		if n != nil {
			n.PlaySound(s)
		}
	}
}

func (ns Notifiers) SpawnEffect(e Effect) {
	for _, n := range ns {
		if n != nil {
			n.SpawnEffect(e)
		}
	}
}

// NotifyCounter tallies notifications; the headless harness uses it in place
// of audio and rendering.
type NotifyCounter struct {
	Sounds  [soundCount]int
	Effects [effectKindCount]int
}

func (c *NotifyCounter) PlaySound(s Sound) {
	if s < soundCount {
		c.Sounds[s]++
	}
}

func (c *NotifyCounter) SpawnEffect(e Effect) {
	if e.Kind < effectKindCount {
		c.Effects[e.Kind]++
	}
}
