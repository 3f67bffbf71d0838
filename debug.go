package gui

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timings and counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	collected      int
	collectTime    time.Duration
	animateTime    time.Duration
	nodeCount      int
	animationCount int

	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	renderCount  int
}

// debugLogUpdate prints Update stats to stderr.
func (s *Scene) debugLogUpdate(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[gui] update collect: %v (%d slots) | animate: %v | nodes: %d | animations: %d\n",
		stats.collectTime, stats.collected, stats.animateTime, stats.nodeCount, stats.animationCount)
}

// debugLogRender prints Render stats to stderr.
func (s *Scene) debugLogRender(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[gui] render traverse: %v | sort: %v | submit: %v | total: %v | nodes: %d\n",
		stats.traverseTime, stats.sortTime, stats.submitTime, total, stats.renderCount)
}

// debugWarnf prints a warning to stderr in debug mode.
func (s *Scene) debugWarnf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[gui] warning: "+format+"\n", args...)
}

// debugCheckTreeDepth warns if the node sits deeper than the threshold.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(n *slot) {
	depth := 0
	for p := n; p != nil; p = s.nodes.at(p.parentIndex) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.debugWarnf("tree depth %d exceeds %d (node %#x)", depth, debugMaxTreeDepth, uint32(n.handle()))
	}
}

// debugCheckChildCount warns if a parent has more children than the threshold.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(parentIndex uint16) {
	head, _ := s.listEnds(parentIndex)
	count := 0
	for c := s.nodes.at(*head); c != nil; c = s.nodes.at(c.nextIndex) {
		count++
	}
	if count > debugMaxChildCount {
		s.debugWarnf("node %d has %d children (threshold %d)", parentIndex, count, debugMaxChildCount)
	}
}
