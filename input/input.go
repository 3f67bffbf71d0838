// Package input routes mouse and touch input to the nodes of a gui scene.
//
// A Router hit-tests against the scene's last draw list, so the topmost
// node drawn under the pointer receives the event. Screen coordinates are
// flipped into the scene's y-up space.
package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gui"
)

const (
	maxPointers         = 10 // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4  // pixels
)

// Button identifies the mouse button behind a pointer event. Touches report
// ButtonLeft.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// PointerEvent describes a pointer interaction. Coordinates are in scene
// space. Node is 0 when the pointer is over empty space.
type PointerEvent struct {
	Node      gui.HNode
	PointerID int
	Button    Button
	X, Y      float32

	// Drag events only.
	StartX, StartY float32
	DeltaX, DeltaY float32
}

// EventKind selects which interaction a handler receives.
type EventKind uint8

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	PointerEnter
	PointerLeave
	Click
	DragStart
	Drag
	DragEnd
	eventKindCount
)

type handler struct {
	id uint32
	fn func(PointerEvent)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	router *Router
	kind   EventKind
	id     uint32
}

// Remove unregisters the callback.
func (h CallbackHandle) Remove() {
	if h.router == nil {
		return
	}
	list := h.router.handlers[h.kind]
	for i := range list {
		if list[i].id == h.id {
			h.router.handlers[h.kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

type pointerState struct {
	down     bool
	dragging bool
	button   Button
	startX   float32
	startY   float32
	lastX    float32
	lastY    float32
	hitNode  gui.HNode
	hover    gui.HNode
}

// syntheticEvent is one injected pointer sample, in screen coordinates.
type syntheticEvent struct {
	x, y    float32
	pressed bool
}

// Router turns raw pointer state into node-level events for one scene.
type Router struct {
	scene    *gui.Scene
	height   float32
	deadZone float32

	pointers  [maxPointers]pointerState
	captured  [maxPointers]gui.HNode
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID

	handlers [eventKindCount][]handler
	nextID   uint32

	injectQueue []syntheticEvent
}

// NewRouter creates a router for s. screenHeight is the height of the
// layout the cursor is reported in, used to flip y.
func NewRouter(s *gui.Scene, screenHeight int) *Router {
	return &Router{
		scene:    s,
		height:   float32(screenHeight),
		deadZone: defaultDragDeadZone,
	}
}

// SetScreenHeight updates the layout height after a resize.
func (r *Router) SetScreenHeight(h int) {
	r.height = float32(h)
}

// SetDragDeadZone sets the distance in pixels a pointer must travel while
// pressed before a drag starts.
func (r *Router) SetDragDeadZone(pixels float32) {
	r.deadZone = pixels
}

// On registers fn for events of the given kind.
func (r *Router) On(kind EventKind, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	r.handlers[kind] = append(r.handlers[kind], handler{id: r.nextID, fn: fn})
	return CallbackHandle{router: r, kind: kind, id: r.nextID}
}

// OnClick registers fn for clicks: a press and release on the same node
// without dragging.
func (r *Router) OnClick(fn func(PointerEvent)) CallbackHandle {
	return r.On(Click, fn)
}

// CapturePointer routes every event of pointerID to node until release.
func (r *Router) CapturePointer(pointerID int, node gui.HNode) {
	if pointerID >= 0 && pointerID < maxPointers {
		r.captured[pointerID] = node
	}
}

// ReleasePointer stops routing pointerID to a captured node.
func (r *Router) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		r.captured[pointerID] = 0
	}
}

// Update polls ebiten for mouse and touch state and dispatches events.
// Call it once per tick after the scene has been rendered at least once.
// While injected events are queued, one is consumed per call instead of
// the real mouse.
func (r *Router) Update() {
	if !r.processInjected() {
		r.processMouse()
	}
	r.processTouches()
}

func (r *Router) processMouse() {
	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button Button
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, ButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, ButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, ButtonMiddle
	}
	x, y := r.toScene(float32(mx), float32(my))
	r.Process(0, x, y, pressed, button)
}

func (r *Router) processTouches() {
	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range r.touchIDs {
		slot := r.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		x, y := r.toScene(float32(tx), float32(ty))
		r.Process(slot, x, y, true, ButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && !active[i] {
			ps := &r.pointers[i]
			if ps.down {
				r.Process(i, ps.lastX, ps.lastY, false, ButtonLeft)
			}
			r.touchUsed[i] = false
			r.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch to a pointer slot (1-9), or -1 when all are busy.
func (r *Router) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && r.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !r.touchUsed[i] {
			r.touchUsed[i] = true
			r.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (r *Router) toScene(sx, sy float32) (float32, float32) {
	return sx, r.height - sy
}

// Process runs the pointer state machine for one sample in scene
// coordinates. Update calls it for real input; it is exported for callers
// that read input themselves.
func (r *Router) Process(pointerID int, x, y float32, pressed bool, button Button) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &r.pointers[pointerID]

	target := r.captured[pointerID]
	if target == 0 {
		target, _ = r.scene.NodeAt(x, y)
	}

	if target != ps.hover {
		if ps.hover != 0 {
			r.fire(PointerLeave, PointerEvent{Node: ps.hover, PointerID: pointerID, Button: button, X: x, Y: y})
		}
		if target != 0 {
			r.fire(PointerEnter, PointerEvent{Node: target, PointerID: pointerID, Button: button, X: x, Y: y})
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false
		r.fire(PointerDown, PointerEvent{Node: target, PointerID: pointerID, Button: button, X: x, Y: y})

	case !pressed && ps.down:
		ev := PointerEvent{Node: target, PointerID: pointerID, Button: ps.button, X: x, Y: y}
		if ps.dragging {
			r.fire(DragEnd, r.dragEvent(ps, pointerID, x, y, x-ps.lastX, y-ps.lastY))
		} else if ps.hitNode != 0 && ps.hitNode == target {
			r.fire(Click, ev)
		}
		r.fire(PointerUp, ev)
		r.captured[pointerID] = 0
		ps.down = false
		ps.dragging = false
		ps.hitNode = 0

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx, dy := float64(x-ps.startX), float64(y-ps.startY)
				if math.Sqrt(dx*dx+dy*dy) > float64(r.deadZone) {
					ps.dragging = true
					r.fire(DragStart, r.dragEvent(ps, pointerID, x, y, x-ps.startX, y-ps.startY))
				}
			}
			if ps.dragging {
				r.fire(Drag, r.dragEvent(ps, pointerID, x, y, x-ps.lastX, y-ps.lastY))
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		if x != ps.lastX || y != ps.lastY {
			r.fire(PointerMove, PointerEvent{Node: target, PointerID: pointerID, Button: button, X: x, Y: y})
			ps.lastX, ps.lastY = x, y
		}
	}
}

func (r *Router) dragEvent(ps *pointerState, pointerID int, x, y, dx, dy float32) PointerEvent {
	return PointerEvent{
		Node: ps.hitNode, PointerID: pointerID, Button: ps.button,
		X: x, Y: y,
		StartX: ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
	}
}

func (r *Router) fire(kind EventKind, ev PointerEvent) {
	for _, h := range r.handlers[kind] {
		h.fn(ev)
	}
}
