// internal/game/dice.go
package game

import (
	"math/rand"
	"sync"
)

// DiceRoller produces a single die face in 1..6.
type DiceRoller interface {
	Roll() int
}

// RandomDice is a seeded die. The same seed replays the same sequence.
type RandomDice struct {
	rng *rand.Rand
}

// NewRandomDice returns a die seeded with seed.
func NewRandomDice(seed int64) *RandomDice {
	return &RandomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDice) Roll() int {
	return d.rng.Intn(6) + 1
}

// ScriptedDice replays a fixed list of faces, then falls back to 1s.
type ScriptedDice struct {
	mu    sync.Mutex
	faces []int
}

// NewScriptedDice returns dice that roll faces in order.
func NewScriptedDice(faces ...int) *ScriptedDice {
	return &ScriptedDice{faces: faces}
}

// Push appends more faces to the script.
func (d *ScriptedDice) Push(faces ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faces = append(d.faces, faces...)
}

func (d *ScriptedDice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.faces) == 0 {
		return 1
	}
	f := d.faces[0]
	d.faces = d.faces[1:]
	return f
}
