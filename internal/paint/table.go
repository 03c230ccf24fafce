package paint

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Effect names one generator.
type Effect string

const (
	EffectSplash    Effect = "splash"
	EffectDrip      Effect = "drip"
	EffectPour      Effect = "pour"
	EffectExplosion Effect = "explosion"
	EffectSpiral    Effect = "spiral"
	EffectFirework  Effect = "firework"
	EffectRain      Effect = "rain"
	EffectTornado   Effect = "tornado"
	EffectWave      Effect = "wave"
	EffectBubble    Effect = "bubble"
	EffectLightning Effect = "lightning"
	EffectHelix     Effect = "helix"
	EffectMeteor    Effect = "meteor"
	EffectNebula    Effect = "nebula"
	EffectCrystal   Effect = "crystal"
	EffectBurst     Effect = "burst"
)

// Generator paints one effect at a point.
type Generator func(p *Painter, at Point, c Color)

var generators = map[Effect]Generator{
	EffectSplash:    (*Painter).Splash,
	EffectDrip:      (*Painter).Drip,
	EffectPour:      (*Painter).Pour,
	EffectExplosion: (*Painter).Explosion,
	EffectSpiral:    (*Painter).Spiral,
	EffectFirework:  (*Painter).Firework,
	EffectRain:      (*Painter).Rain,
	EffectTornado:   (*Painter).Tornado,
	EffectWave:      (*Painter).Wave,
	EffectBubble:    (*Painter).Bubble,
	EffectLightning: (*Painter).Lightning,
	EffectHelix:     (*Painter).Helix,
	EffectMeteor:    (*Painter).Meteor,
	EffectNebula:    (*Painter).Nebula,
	EffectCrystal:   (*Painter).Crystal,
	EffectBurst:     (*Painter).Burst,
}

// Known reports whether e has a generator.
func Known(e Effect) bool {
	_, ok := generators[e]
	return ok
}

var (
	ErrDuplicateKey    = errors.New("duplicate effect key")
	ErrDuplicateEffect = errors.New("effect bound to more than one key")
	ErrUnknownEffect   = errors.New("unknown effect")
	ErrInvalidKey      = errors.New("invalid effect key")
	ErrEmptyTable      = errors.New("effect table is empty")
)

// Entry binds a key to an effect. Label is what the legend shows.
type Entry struct {
	Key    rune
	Effect Effect
	Label  string
}

// Table is an ordered, read-only key to effect mapping. Keys are
// case-insensitive and stored lower case.
type Table struct {
	entries []Entry
	byKey   map[rune]Effect
}

// NewTable validates entries in order. A key or effect that appears twice
// is an error rather than a silent overwrite.
func NewTable(entries ...Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[rune]Effect, len(entries)),
	}
	seen := make(map[Effect]rune, len(entries))
	for _, e := range entries {
		if !unicode.IsPrint(e.Key) || unicode.IsSpace(e.Key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, e.Key)
		}
		if !Known(e.Effect) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, e.Effect)
		}
		key := unicode.ToLower(e.Key)
		if prev, ok := t.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %q is %s, cannot also be %s", ErrDuplicateKey, key, prev, e.Effect)
		}
		if prev, ok := seen[e.Effect]; ok {
			return nil, fmt.Errorf("%w: %s on %q and %q", ErrDuplicateEffect, e.Effect, prev, key)
		}
		e.Key = key
		if e.Label == "" {
			e.Label = string(e.Effect)
		}
		t.byKey[key] = e.Effect
		seen[e.Effect] = key
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// DefaultTable returns the built-in keyboard layout.
func DefaultTable() *Table {
	t, err := NewTable(
		Entry{'s', EffectSplash, "Splash"},
		Entry{'g', EffectDrip, "Drip"},
		Entry{'v', EffectPour, "Pour"},
		Entry{'e', EffectExplosion, "Explosion"},
		Entry{'r', EffectSpiral, "Spiral"},
		Entry{'f', EffectFirework, "Fireworks"},
		Entry{'p', EffectRain, "Rain"},
		Entry{'t', EffectTornado, "Tornado"},
		Entry{'o', EffectWave, "Wave"},
		Entry{'b', EffectBubble, "Bubble"},
		Entry{'l', EffectLightning, "Lightning"},
		Entry{'h', EffectHelix, "Helix"},
		Entry{'m', EffectMeteor, "Meteor"},
		Entry{'n', EffectNebula, "Nebula"},
		Entry{'x', EffectCrystal, "Crystal"},
		Entry{'u', EffectBurst, "Burst"},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the effect bound to key, ignoring case.
func (t *Table) Lookup(key rune) (Effect, bool) {
	e, ok := t.byKey[unicode.ToLower(key)]
	return e, ok
}

// Resolve maps a single-character key to its effect. Anything else,
// including unbound keys, empty input and longer strings, yields a
// uniformly random effect from the table.
func (t *Table) Resolve(key string, r Rand) Effect {
	e, _ := t.resolve(key, r)
	return e
}

// resolve also reports whether key was bound.
func (t *Table) resolve(key string, r Rand) (Effect, bool) {
	if utf8.RuneCountInString(key) == 1 {
		k, _ := utf8.DecodeRuneInString(key)
		if e, ok := t.Lookup(k); ok {
			return e, true
		}
	}
	return t.Random(r), false
}

// Random returns a uniformly chosen effect from the table.
func (t *Table) Random(r Rand) Effect {
	return t.entries[intBetween(r, 0, len(t.entries))].Effect
}

// Entries returns the table in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Keys returns the bound keys in declaration order.
func (t *Table) Keys() []rune {
	out := make([]rune, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Key)
	}
	return out
}

// Effects returns the bound effect names in declaration order.
func (t *Table) Effects() []Effect {
	out := make([]Effect, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Effect)
	}
	return out
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.entries) }
