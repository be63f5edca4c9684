// Package motion provides scroll-driven animation state for landing pages
// and portfolio sites.
//
// The package has two halves. The configuration half cleans up animation
// variant maps before they reach a renderer: [Sanitize] replaces
// string-encoded cubic-bezier easings that some renderers reject with
// [FallbackEasing], and [SanitizeVariants] applies it to static and dynamic
// variants alike. [LoadPresets] reads named variant maps from YAML, and
// [PresetWatcher] reloads them when the file changes.
//
// The hook half turns environment events into state:
//
//   - [ViewportObserver] tracks whether an element is in view and whether it
//     has ever been.
//   - [ScrollTracker] derives scroll direction, edge flags and percentage
//     from scroll notifications.
//   - [CounterAnimator] counts from a start value to an end value over
//     frames, for statistics strips.
//
// Hooks never touch a browser or a window directly. They depend on the host
// capabilities [IntersectionHost], [ScrollHost] and [FrameScheduler], which
// callers inject. [Page] implements all three in memory and is driven by
// calling [Page.Update] once per frame:
//
//	page := motion.NewPage(1280, 720, motion.WithDocumentHeight(4000))
//	stats := page.NewSection("stats", motion.Rect{Y: 1400, Width: 1280, Height: 300})
//
//	obs := motion.NewViewportObserver(page, motion.NewElementRef(stats))
//	counter := motion.NewCounterAnimator(page, 250, motion.WithTrigger(false))
//
//	// each frame
//	page.Update()
//	counter.SetTrigger(obs.HasAnimated())
//
// Package ebitenhost runs a Page inside an Ebitengine window, and the ecs
// sub-module forwards page events into a [Donburi] world.
//
// # Theme
//
// [ThemeService] owns the light/dark choice. Create one in main, call
// [ThemeService.Init], and pass it to whatever needs it; it persists the
// choice through [gdata] when given a store.
//
// # Testing
//
// [Page.InjectScroll], [Page.InjectScrollSweep] and [LoadScript] replay
// scroll sessions deterministically. Combine them with [WithClock] and a
// clockz fake clock for frame-exact tests.
//
// [Donburi]: https://github.com/yohamta/donburi
// [gdata]: https://github.com/quasilyte/gdata
package motion
