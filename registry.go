package motion

import "time"

// --- Handler registry ---

type scrollHandler struct {
	id      uint32
	fn      func()
	removed bool
}

type intersectionWatcher struct {
	id        uint32
	el        Element
	threshold float64
	margin    RootMargin
	fn        func(IntersectionEntry)

	// reported is false until the first notification has been delivered.
	reported     bool
	intersecting bool
	removed      bool
}

type frameRequest struct {
	id        uint32
	fn        func(now time.Time)
	cancelled bool
}

type handlerRegistry struct {
	scroll   []*scrollHandler
	watchers []*intersectionWatcher
	frames   []*frameRequest
	nextID   uint32
}

type handleKind uint8

const (
	handleScroll handleKind = iota
	handleIntersection
)

// CallbackHandle allows removing a callback registered on a Page.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handleKind
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handleScroll:
		h.reg.scroll = removeScrollHandler(h.reg.scroll, h.id)
	case handleIntersection:
		h.reg.watchers = removeWatcher(h.reg.watchers, h.id)
	}
}

// FrameRequest is the handle returned by Page.RequestFrame.
type FrameRequest struct {
	req *frameRequest
	reg *handlerRegistry
}

// Cancel drops the request if it has not run yet.
func (h FrameRequest) Cancel() {
	if h.req == nil || h.req.cancelled {
		return
	}
	h.req.cancelled = true
	h.reg.frames = removeFrame(h.reg.frames, h.req.id)
}

func removeScrollHandler(s []*scrollHandler, id uint32) []*scrollHandler {
	for i := range s {
		if s[i].id == id {
			s[i].removed = true
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

func removeWatcher(s []*intersectionWatcher, id uint32) []*intersectionWatcher {
	for i := range s {
		if s[i].id == id {
			s[i].removed = true
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

func removeFrame(s []*frameRequest, id uint32) []*frameRequest {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addScroll(fn func()) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.scroll = append(r.scroll, &scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, kind: handleScroll}
}

func (r *handlerRegistry) addWatcher(w *intersectionWatcher) CallbackHandle {
	r.nextID++
	w.id = r.nextID
	r.watchers = append(r.watchers, w)
	return CallbackHandle{id: w.id, reg: r, kind: handleIntersection}
}

func (r *handlerRegistry) addFrame(fn func(now time.Time)) FrameRequest {
	r.nextID++
	req := &frameRequest{id: r.nextID, fn: fn}
	r.frames = append(r.frames, req)
	return FrameRequest{req: req, reg: r}
}
