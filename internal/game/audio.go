package game

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const audioSampleRate = 44100

// tone describes a synthesized cue: a frequency sweep mixed with noise under
// a linear decay envelope.
type tone struct {
	from, to float64 // Hz
	seconds  float64
	noise    float64 // 0..1 share of white noise
	volume   float64
}

var soundTones = [soundCount]tone{
	SoundShot:         {from: 900, to: 120, seconds: 0.09, noise: 0.7, volume: 0.35},
	SoundZombieAttack: {from: 140, to: 90, seconds: 0.25, noise: 0.3, volume: 0.3},
	SoundZombieDeath:  {from: 220, to: 60, seconds: 0.4, noise: 0.2, volume: 0.35},
	SoundPlayerHurt:   {from: 330, to: 180, seconds: 0.15, noise: 0.1, volume: 0.4},
	SoundPickup:       {from: 880, to: 1320, seconds: 0.1, volume: 0.25},
	SoundBlockPlaced:  {from: 200, to: 160, seconds: 0.08, noise: 0.4, volume: 0.3},
	SoundBlockBroken:  {from: 180, to: 40, seconds: 0.3, noise: 0.8, volume: 0.4},
	SoundNightfall:    {from: 220, to: 110, seconds: 1.2, volume: 0.3},
	SoundDaybreak:     {from: 330, to: 660, seconds: 1.0, volume: 0.25},
}

// synthesize renders t as 16-bit little-endian stereo PCM.
func synthesize(t tone, rng *rand.Rand) []byte {
	n := int(t.seconds * audioSampleRate)
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*frac
		phase += 2 * math.Pi * freq / audioSampleRate
		v := (1-t.noise)*math.Sin(phase) + t.noise*(rng.Float64()*2-1)
		v *= t.volume * (1 - frac)
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[4*i:], s)
		binary.LittleEndian.PutUint16(buf[4*i+2:], s)
	}
	return buf
}

// AudioNotifier plays a synthesized cue for every sound the level emits.
type AudioNotifier struct {
	ctx   *audio.Context
	clips [soundCount][]byte
	Muted bool
}

// NewAudioNotifier synthesizes every cue up front. ebiten allows a single
// audio context per process, so the game creates exactly one.
func NewAudioNotifier() *AudioNotifier {
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- noise only
	a := &AudioNotifier{ctx: audio.NewContext(audioSampleRate)}
	for s := Sound(0); s < soundCount; s++ {
		a.clips[s] = synthesize(soundTones[s], rng)
	}
	return a
}

func (a *AudioNotifier) PlaySound(s Sound) {
	if a.Muted || s >= soundCount || len(a.clips[s]) == 0 {
		return
	}
	a.ctx.NewPlayerFromBytes(a.clips[s]).Play()
}

func (a *AudioNotifier) SpawnEffect(Effect) {}
