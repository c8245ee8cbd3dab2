package blockfall

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// animationTimer follows the engine's animation marker. The visual timer
// starts on the first frame that draws the animation; the watchdog runs from
// the moment the marker is seen, so an animation that is never drawn still
// completes.
type animationTimer struct {
	kind     engine.Animation
	shown    bool
	visual   time.Duration // time since first drawn
	watchdog time.Duration // time since armed
}

// advanceAnimation ticks the timer for the armed marker and dispatches the
// completion action once the animation has played out.
func (g *Game) advanceAnimation() {
	kind := g.state.Animation
	if kind == engine.AnimationNone {
		g.anim = animationTimer{}
		return
	}
	if g.anim.kind != kind {
		g.anim = animationTimer{kind: kind}
	}
	if g.state.Status == engine.StatusPaused {
		return
	}

	g.anim.watchdog += g.tickDur
	if g.anim.shown {
		g.anim.visual += g.tickDur
	}

	switch {
	case g.anim.shown && g.anim.visual >= g.animationLength(kind):
	case g.anim.watchdog >= g.cfg.Timing.Watchdog():
		g.logger.Warn("animation watchdog fired", "animation", kind, "after", g.anim.watchdog)
	default:
		return
	}
	g.completeAnimation(kind)
}

func (g *Game) animationLength(kind engine.Animation) time.Duration {
	switch kind {
	case engine.AnimationClearingLines:
		return g.cfg.Timing.LineClear()
	case engine.AnimationDroppingPiece:
		return g.cfg.Timing.HardDrop()
	}
	return 0
}

func (g *Game) completeAnimation(kind engine.Animation) {
	switch {
	case kind == engine.AnimationClearingLines && len(g.state.FullLines) > 0:
		g.dispatch(engine.ClearFullLines())
	case kind == engine.AnimationDroppingPiece:
		g.dispatch(engine.EndHardDrop())
	default:
		g.dispatch(engine.EndAnimation())
	}
	g.anim = animationTimer{}
}

// markShown starts the visual timer for the armed animation.
func (g *Game) markShown() {
	if g.state.Animation != engine.AnimationNone && g.anim.kind == g.state.Animation {
		g.anim.shown = true
	}
}

// animationProgress returns how far the visible animation has played, 0 to 1.
func (g *Game) animationProgress() float64 {
	length := g.animationLength(g.state.Animation)
	if length <= 0 || !g.anim.shown {
		return 0
	}
	return min(1, float64(g.anim.visual)/float64(length))
}

// easeInQuad accelerates from rest.
func easeInQuad(t float64) float64 {
	return t * t
}
