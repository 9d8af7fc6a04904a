package world

import "pepse/internal/core"

// JumpBus fans a jump out to every listener registered at assembly time.
type JumpBus struct {
	listeners []core.JumpListener
	jumps     int
}

// Subscribe registers l. Listeners are notified in subscription order.
func (b *JumpBus) Subscribe(l core.JumpListener) {
	if l != nil {
		b.listeners = append(b.listeners, l)
	}
}

// Publish notifies every listener of a jump.
func (b *JumpBus) Publish() {
	b.jumps++
	for _, l := range b.listeners {
		l.OnJump()
	}
}

// Jumps returns how many jumps were published.
func (b *JumpBus) Jumps() int { return b.jumps }

// Energy is the avatar's energy meter.
type Energy struct {
	value float64
	max   float64
}

// NewEnergy returns a full meter.
func NewEnergy(max float64) *Energy {
	return &Energy{value: max, max: max}
}

// AddEnergy adds amount and caps the meter only when the sum exceeds the
// maximum; landing exactly on it is left alone.
func (e *Energy) AddEnergy(amount float64) {
	e.value += amount
	if e.value > e.max {
		e.value = e.max
	}
}

// Spend deducts amount if the meter holds at least that much.
func (e *Energy) Spend(amount float64) bool {
	if e.value < amount {
		return false
	}
	e.value -= amount
	return true
}

// Recover adds amount, never rising above the maximum.
func (e *Energy) Recover(amount float64) {
	e.value = min(e.max, e.value+amount)
}

// Value returns the current energy.
func (e *Energy) Value() float64 { return e.value }

// Max returns the meter's capacity.
func (e *Energy) Max() float64 { return e.max }
