package input

// InjectPress queues a left-button press at the given screen coordinates.
// Injected events replace the real mouse, one per Update.
func (r *Router) InjectPress(x, y float32) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move with the button held down.
func (r *Router) InjectMove(x, y float32) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a release at the given screen coordinates.
func (r *Router) InjectRelease(x, y float32) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// updates.
func (r *Router) InjectClick(x, y float32) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced moves
// and a release at (toX, toY). frames is at least 2.
func (r *Router) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	frames = max(frames, 2)
	r.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		r.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	r.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (r *Router) Pending() int {
	return len(r.injectQueue)
}

// processInjected feeds one queued event through pointer 0. Returns false
// when the queue is empty.
func (r *Router) processInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	ev := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	x, y := r.toScene(ev.x, ev.y)
	r.Process(0, x, y, ev.pressed, ButtonLeft)
	return true
}
