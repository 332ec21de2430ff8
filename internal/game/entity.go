package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityRef is a non-owning handle into a Registry. The zero value refers to
// nothing.
type EntityRef int32

// NoEntity is the empty handle.
const NoEntity EntityRef = 0

// EntityKind tags the role of an entity.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindZombie
	KindBlock
	KindCollectable
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindZombie:
		return "zombie"
	case KindBlock:
		return "block"
	case KindCollectable:
		return "collectable"
	default:
		return "unknown"
	}
}

// Body is the data every entity shares.
type Body struct {
	ID        EntityRef
	Kind      EntityKind
	Pos       WorldPos
	Health    float64
	MaxHealth float64
	Static    bool // blocks its tile
	removed   bool
}

// Alive reports whether the entity still takes part in the level.
func (b *Body) Alive() bool { return !b.removed && b.Health > 0 }

// Label is a short tag used in logs, e.g. "Z12".
func (b *Body) Label() string {
	switch b.Kind {
	case KindPlayer:
		return "P"
	case KindZombie:
		return fmt.Sprintf("Z%d", b.ID)
	case KindBlock:
		return fmt.Sprintf("B%d", b.ID)
	default:
		return fmt.Sprintf("C%d", b.ID)
	}
}

// Entity is implemented by every role. Behaviour receives the level as its
// context instead of reading global state.
type Entity interface {
	Base() *Body
	Update(lv *Level, dt float64)
	Draw(dst *ebiten.Image, cfg GridConfig)
	Damage(lv *Level, amount float64)
	Destroy(lv *Level)
}

// Registry owns the level's entities. Handles are never reused within a
// level, so a stale EntityRef simply stops resolving.
type Registry struct {
	next          EntityRef
	byRef         map[EntityRef]Entity
	order         []EntityRef
	staticVersion int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byRef: make(map[EntityRef]Entity)}
}

// Add registers e, assigns its handle and returns it.
func (r *Registry) Add(e Entity) EntityRef {
	r.next++
	b := e.Base()
	b.ID = r.next
	b.removed = false
	r.byRef[b.ID] = e
	r.order = append(r.order, b.ID)
	if b.Static {
		r.staticVersion++
	}
	return b.ID
}

// Get resolves a handle.
func (r *Registry) Get(ref EntityRef) (Entity, bool) {
	e, ok := r.byRef[ref]
	return e, ok
}

// Remove drops an entity. Returns false if the handle was already gone.
func (r *Registry) Remove(ref EntityRef) bool {
	e, ok := r.byRef[ref]
	if !ok {
		return false
	}
	b := e.Base()
	b.removed = true
	delete(r.byRef, ref)
	if b.Static {
		r.staticVersion++
	}
	return true
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return len(r.byRef) }

// StaticVersion changes whenever a blocking entity is added or removed.
func (r *Registry) StaticVersion() int { return r.staticVersion }

// Snapshot returns live entities in insertion order. Entities added or
// removed while iterating the result do not affect it.
func (r *Registry) Snapshot() []Entity {
	kept := r.order[:0]
	out := make([]Entity, 0, len(r.byRef))
	for _, ref := range r.order {
		if e, ok := r.byRef[ref]; ok {
			kept = append(kept, ref)
			out = append(out, e)
		}
	}
	r.order = kept
	return out
}

// Zombies returns live zombies in insertion order.
func (r *Registry) Zombies() []*Zombie {
	var out []*Zombie
	for _, e := range r.Snapshot() {
		if z, ok := e.(*Zombie); ok {
			out = append(out, z)
		}
	}
	return out
}

// CountKind returns how many live entities have the given kind.
func (r *Registry) CountKind(k EntityKind) int {
	n := 0
	for _, e := range r.byRef {
		if e.Base().Kind == k {
			n++
		}
	}
	return n
}

// Occupants lists the data RebuildGrid needs, in insertion order. Coins and
// zombies parked off-map until night do not occupy a tile.
func (r *Registry) Occupants() []Occupant {
	snap := r.Snapshot()
	out := make([]Occupant, 0, len(snap))
	for _, e := range snap {
		b := e.Base()
		if b.Kind == KindCollectable {
			continue
		}
		if z, ok := e.(*Zombie); ok && z.State() == ZombieWaitingForNight {
			continue
		}
		out = append(out, Occupant{Ref: b.ID, Kind: b.Kind, Pos: b.Pos, Static: b.Static})
	}
	return out
}
