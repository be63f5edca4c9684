package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active smooth-scroll tween for the page's Y offset.
type scrollAnim struct {
	tween  *gween.Tween
	x      float64
	done   bool
	onDone func()
}

// SmoothScrollTo animates the vertical scroll position to y over duration
// seconds using the easing function. The target is clamped to the
// scrollable range when the tween starts. A later ScrollTo or injected
// scroll cancels the animation. A nil easing function means ease.InOutQuad.
func (p *Page) SmoothScrollTo(y float64, duration float32, fn ease.TweenFunc) {
	p.SmoothScrollToThen(y, duration, fn, nil)
}

// SmoothScrollToThen is SmoothScrollTo with a callback run once the target
// is reached. The callback does not run if the scroll is interrupted.
func (p *Page) SmoothScrollToThen(y float64, duration float32, fn ease.TweenFunc, onDone func()) {
	if fn == nil {
		fn = ease.InOutQuad
	}
	y = min(max(y, 0), p.maxScrollY())
	if duration <= 0 {
		p.ScrollTo(p.scroll.X, y)
		if onDone != nil {
			onDone()
		}
		return
	}
	p.scrollTween = &scrollAnim{
		tween:  gween.New(float32(p.scroll.Y), float32(y), duration, fn),
		x:      p.scroll.X,
		onDone: onDone,
	}
}

// ScrollToSection smooth-scrolls so that the top of s sits offset pixels
// below the top of the viewport, for header navigation links.
func (p *Page) ScrollToSection(s *Section, offset float64, duration float32, fn ease.TweenFunc) {
	if s == nil {
		return
	}
	p.SmoothScrollTo(s.Bounds().Y-offset, duration, fn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (p *Page) Scrolling() bool {
	return p.scrollTween != nil && !p.scrollTween.done
}

// updateScrollTween advances the smooth scroll by dt seconds. Called from
// Page.Update.
func (p *Page) updateScrollTween(dt float32) {
	anim := p.scrollTween
	if anim == nil || anim.done {
		return
	}
	val, finished := anim.tween.Update(dt)
	p.setScroll(anim.x, float64(val))
	// A scroll listener may have started a new tween or jumped the page.
	if p.scrollTween != anim {
		return
	}
	if finished {
		anim.done = true
		p.scrollTween = nil
		if anim.onDone != nil {
			anim.onDone()
		}
	}
}
