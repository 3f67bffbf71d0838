package gui

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Playback selects how an animation runs once its delay has elapsed.
type Playback uint8

const (
	PlaybackOnceForward Playback = iota
	PlaybackOnceBackward
	PlaybackOncePingPong
	PlaybackLoopForward
	PlaybackLoopBackward
	PlaybackLoopPingPong
)

func (p Playback) pingPong() bool {
	return p == PlaybackOncePingPong || p == PlaybackLoopPingPong
}

func (p Playback) backward() bool {
	return p == PlaybackOnceBackward || p == PlaybackLoopBackward
}

func (p Playback) loops() bool {
	return p >= PlaybackLoopForward
}

// AnimationComplete is called at most once per AnimateNode call: with
// finished set when the animation runs to completion, and with finished
// unset when it is cancelled through CancelAnimation or CancelAnimations.
// Animations retired because their node was deleted are dropped silently.
// Animations of a node that is disabled, or under a disabled ancestor, pause.
type AnimationComplete func(scene *Scene, node HNode, finished bool, userData1, userData2 any)

// animation drives a single component of one node property.
type animation struct {
	node      HNode
	property  Property
	component uint8

	from, to float32
	delay    float32
	elapsed  float32
	duration float32
	easing   Easing
	playback Playback

	onComplete AnimationComplete
	userData1  any
	userData2  any

	firstUpdate      bool
	completionCalled bool
	cancelled        bool
	backwards        bool
	done             bool // removed; compacted at the end of the pass
}

// findAnimation returns the index of the live animation driving the given
// component, or -1.
func (s *Scene) findAnimation(h HNode, p Property, component uint8) int {
	for i := range s.animations {
		a := &s.animations[i]
		if !a.done && a.node == h && a.property == p && a.component == component {
			return i
		}
	}
	return -1
}

// AnimateNode animates every component of property p towards to. Duration
// and delay are in seconds. Ping-pong playback spends half the duration on
// each leg. An animation already driving a component of p on this node is
// replaced without notifying its callback.
//
// onComplete may be nil. It is attached to the last component, which the
// update pass processes after the others, so the property holds its final
// value when the callback runs.
//
// Fails with ErrOutOfResources, starting nothing, if the scene's animation
// pool cannot hold the new animations.
func (s *Scene) AnimateNode(h HNode, p Property, to mgl32.Vec4, easing Easing, duration, delay float32, playback Playback, onComplete AnimationComplete, userData1, userData2 any) error {
	if _, err := s.lookupLive(h); err != nil {
		return err
	}
	if int(p) >= PropertyCount {
		return fmt.Errorf("animate property %d: %w", p, ErrInvalidOperation)
	}

	var existing [4]int
	needed := 0
	for c := range existing {
		existing[c] = s.findAnimation(h, p, uint8(c))
		if existing[c] < 0 {
			needed++
		}
	}
	if s.liveAnims+needed > s.maxAnimations {
		return fmt.Errorf("animate %s: %d of %d animations in use: %w", p, s.liveAnims, s.maxAnimations, ErrOutOfResources)
	}

	if duration < 0 {
		duration = 0
	}
	if delay < 0 {
		delay = 0
	}
	if playback.pingPong() {
		duration *= 0.5
	}

	for c := range existing {
		a := animation{
			node:        h,
			property:    p,
			component:   uint8(c),
			to:          to[c],
			delay:       delay,
			duration:    duration,
			easing:      easing,
			playback:    playback,
			firstUpdate: true,
			backwards:   playback.backward(),
		}
		if c == len(existing)-1 {
			a.onComplete = onComplete
			a.userData1 = userData1
			a.userData2 = userData2
		}

		idx := existing[c]
		switch {
		case idx >= 0 && !s.updating:
			s.animations[idx] = a
		case idx >= 0:
			// Mid-pass: retire the old entry and start fresh after the
			// pass's processing range.
			s.animations[idx].done = true
			s.animations = append(s.animations, a)
		default:
			s.animations = append(s.animations, a)
			s.liveAnims++
		}
	}
	return nil
}

// CancelAnimation stops every animation on property p of the node. The
// property keeps its current value.
func (s *Scene) CancelAnimation(h HNode, p Property) error {
	if _, err := s.lookup(h); err != nil {
		return err
	}
	s.cancelAnimations(h, p, true)
	return nil
}

// CancelAnimations stops every animation on the node.
func (s *Scene) CancelAnimations(h HNode) error {
	if _, err := s.lookup(h); err != nil {
		return err
	}
	s.cancelAnimations(h, 0, false)
	return nil
}

// AnimationCount returns the number of active animations. Each animated
// property component counts once.
func (s *Scene) AnimationCount() int {
	return s.liveAnims
}

func (s *Scene) cancelAnimations(h HNode, p Property, matchProperty bool) {
	// Callbacks may start or cancel animations, so entries are re-read by
	// index and the slice is only compacted after they have run.
	outer := s.updating
	s.updating = true
	end := len(s.animations)
	for i := 0; i < end && !s.deleted; i++ {
		a := &s.animations[i]
		if a.done || a.node != h || (matchProperty && a.property != p) {
			continue
		}
		a.done = true
		a.cancelled = true
		s.liveAnims--
		if a.onComplete == nil || a.completionCalled {
			continue
		}
		a.completionCalled = true
		cb, ud1, ud2, prop := a.onComplete, a.userData1, a.userData2, a.property
		s.emit(Event{Type: EventAnimationCancelled, Node: h, Property: prop, UserData1: ud1, UserData2: ud2})
		cb(s, h, false, ud1, ud2)
	}
	s.updating = outer
	if !outer && !s.deleted {
		s.compactAnimations()
	}
}

// compactAnimations removes finished entries, preserving order.
func (s *Scene) compactAnimations() {
	j := 0
	for i := range s.animations {
		if s.animations[i].done {
			continue
		}
		if i != j {
			s.animations[j] = s.animations[i]
		}
		j++
	}
	clear(s.animations[j:])
	s.animations = s.animations[:j]
}

// updateAnimations advances the animations that exist when the pass starts.
// Animations started from callbacks begin on the next pass. Components
// driven by more than one entry end up with the value written last.
func (s *Scene) updateAnimations(dt float32) {
	s.updating = true
	end := len(s.animations)
	for i := 0; i < end; i++ {
		if s.deleted {
			// Deleted from a callback.
			return
		}
		a := &s.animations[i]
		if a.done {
			continue
		}
		n := s.nodes.get(a.node)
		if n == nil || n.deleted {
			a.done = true
			a.cancelled = true
			s.liveAnims--
			continue
		}
		if !s.enabledInTree(n) {
			continue
		}

		step := dt
		if a.delay > 0 {
			if step < a.delay {
				a.delay -= step
				continue
			}
			step -= a.delay
			a.delay = 0
		}

		value := &n.node.properties[a.property][a.component]
		if a.firstUpdate {
			a.from = *value
			a.firstUpdate = false
		}

		a.elapsed += step
		t := float32(1)
		if a.duration > 0 {
			t = min(a.elapsed/a.duration, 1)
		}
		sample := t
		if a.backwards {
			sample = 1 - t
		}
		*value = a.from + (a.to-a.from)*a.easing.Eval(sample)
		if a.property.affectsTransform() {
			n.node.state.DirtyLocal = true
		}

		if t < 1 {
			continue
		}
		switch {
		case a.playback.pingPong() && (a.playback.loops() || !a.backwards):
			// The boundary sample closes this leg; the rest of the step
			// carries into the next one.
			a.backwards = !a.backwards
			a.elapsed = a.leftover()
		case a.playback.loops():
			a.elapsed = a.leftover()
		default:
			s.completeAnimation(a)
		}
	}
	s.compactAnimations()
	s.updating = false
}

// leftover returns the part of elapsed past the end of the leg, kept
// shorter than one leg.
func (a *animation) leftover() float32 {
	if a.duration <= 0 {
		return 0
	}
	return float32(math.Mod(float64(a.elapsed-a.duration), float64(a.duration)))
}

func (s *Scene) completeAnimation(a *animation) {
	a.done = true
	s.liveAnims--
	if a.onComplete == nil || a.completionCalled {
		return
	}
	a.completionCalled = true
	h, prop, cb, ud1, ud2 := a.node, a.property, a.onComplete, a.userData1, a.userData2
	s.emit(Event{Type: EventAnimationComplete, Node: h, Property: prop, UserData1: ud1, UserData2: ud2})
	cb(s, h, true, ud1, ud2)
}
