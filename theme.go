package motion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"github.com/zoobzio/capitan"
	"gopkg.in/yaml.v3"
)

// Theme is the site's color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme. Unknown themes flip to light.
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

var (
	// ErrThemeNotInitialized is returned when the theme service is used
	// before Init. It signals an integration mistake, not a runtime
	// condition: the composition root must call Init before handing the
	// service to components.
	ErrThemeNotInitialized = errors.New("motion: theme service used before Init")

	// ErrUnknownTheme is returned by Set for themes other than light and dark.
	ErrUnknownTheme = errors.New("motion: unknown theme")
)

// themeSettings is the persisted form of the theme choice.
type themeSettings struct {
	Theme Theme `yaml:"theme"`
}

// Storage path constants.
const (
	themeObject   = "settings"
	themeProperty = "theme"
)

type themeSubscriber struct {
	id uint32
	fn func(Theme)
}

// ThemeService owns the current theme. It loads the saved choice on Init,
// persists every change, and notifies subscribers. It is safe for
// concurrent use; subscribers are called outside the lock.
type ThemeService struct {
	store *gdata.Manager

	mu          sync.Mutex
	theme       Theme
	initialized bool
	subs        []themeSubscriber
	nextID      uint32
}

// NewThemeService creates a service backed by store. A nil store keeps the
// theme in memory only.
func NewThemeService(store *gdata.Manager) *ThemeService {
	return &ThemeService{store: store}
}

// Init loads the saved theme, falling back to preferred (for example the
// operating system's color scheme) when nothing is saved or the saved data
// is unreadable. A load failure is logged and returned, but the service is
// usable afterwards.
func (s *ThemeService) Init(preferred Theme) error {
	if !preferred.Valid() {
		preferred = ThemeLight
	}
	theme, err := s.load()
	if err != nil {
		log.Printf("[ThemeService] Warning: failed to load theme: %v (using %s)", err, preferred)
	}
	if !theme.Valid() {
		theme = preferred
	}

	s.mu.Lock()
	s.theme = theme
	s.initialized = true
	s.mu.Unlock()
	return err
}

// Get returns the current theme.
func (s *ThemeService) Get() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return "", ErrThemeNotInitialized
	}
	return s.theme, nil
}

// MustGet is like Get but panics if the service was never initialized.
func (s *ThemeService) MustGet() Theme {
	t, err := s.Get()
	if err != nil {
		panic(err)
	}
	return t
}

// Set switches to t, saves it and notifies subscribers. Setting the current
// theme again is a no-op. The in-memory theme changes even if saving fails;
// the save error is returned.
func (s *ThemeService) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("set theme %q: %w", t, ErrUnknownTheme)
	}
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrThemeNotInitialized
	}
	if s.theme == t {
		s.mu.Unlock()
		return nil
	}
	s.theme = t
	subs := make([]themeSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	err := s.save(t)
	capitan.Emit(context.Background(), ThemeChanged, KeyTheme.Field(string(t)))
	for _, sub := range subs {
		sub.fn(t)
	}
	return err
}

// Toggle flips between light and dark and returns the new theme.
func (s *ThemeService) Toggle() (Theme, error) {
	cur, err := s.Get()
	if err != nil {
		return "", err
	}
	next := cur.Opposite()
	return next, s.Set(next)
}

// Subscribe registers fn to run after every theme change.
func (s *ThemeService) Subscribe(fn func(Theme)) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, ErrThemeNotInitialized
	}
	s.nextID++
	s.subs = append(s.subs, themeSubscriber{id: s.nextID, fn: fn})
	return themeHandle{s: s, id: s.nextID}, nil
}

type themeHandle struct {
	s  *ThemeService
	id uint32
}

func (h themeHandle) Remove() {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	for i := range h.s.subs {
		if h.s.subs[i].id == h.id {
			h.s.subs = append(h.s.subs[:i], h.s.subs[i+1:]...)
			return
		}
	}
}

// load reads the saved theme. It returns "" without error when there is
// no store or nothing has been saved.
func (s *ThemeService) load() (Theme, error) {
	if s.store == nil {
		return "", nil
	}
	if !s.store.ObjectPropExists(themeObject, themeProperty) {
		return "", nil
	}
	data, err := s.store.LoadObjectProp(themeObject, themeProperty)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	var saved themeSettings
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return "", fmt.Errorf("unmarshal theme: %w", err)
	}
	if !saved.Theme.Valid() {
		return "", fmt.Errorf("load theme: %w: %q", ErrUnknownTheme, saved.Theme)
	}
	return saved.Theme, nil
}

// save persists t. Without a store this is a no-op.
func (s *ThemeService) save(t Theme) error {
	if s.store == nil {
		return nil
	}
	data, err := yaml.Marshal(themeSettings{Theme: t})
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	if err := s.store.SaveObjectProp(themeObject, themeProperty, data); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
