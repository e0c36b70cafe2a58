// Package session holds the interactive state of a palette editor: the
// current base colour and scheme, the loaded image surface and the list of
// colours picked from it.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/palette-tools-mcp/internal/colour"
	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// ErrIndexOutOfRange is returned when a picked-colour index does not exist.
var ErrIndexOutOfRange = errors.New("picked colour index out of range")

// ErrUnknownPreset is returned by ApplyPreset for a name with no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	base    string
	scheme  palette.Scheme
	surface *imaging.Surface
	picked  []imaging.PickedColor
}

// New returns a session with the given base colour and scheme and no image.
// The base is not validated; an unparseable base yields the one-colour
// fallback palette until a valid one is set.
func New(base string, scheme palette.Scheme) *Session {
	return &Session{base: base, scheme: scheme}
}

// Base returns the current base colour.
func (s *Session) Base() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base
}

// SetBase replaces the base colour. Invalid hex strings are rejected and the
// previous base is kept.
func (s *Session) SetBase(hex string) error {
	if _, err := colour.ParseHex(hex); err != nil {
		return err
	}
	s.mu.Lock()
	s.base = hex
	s.mu.Unlock()
	return nil
}

// Scheme returns the current scheme.
func (s *Session) Scheme() palette.Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme
}

// SetScheme replaces the current scheme.
func (s *Session) SetScheme(scheme palette.Scheme) {
	s.mu.Lock()
	s.scheme = scheme
	s.mu.Unlock()
}

// Palette derives a fresh palette from the current base and scheme.
func (s *Session) Palette() []string {
	s.mu.Lock()
	base, scheme := s.base, s.scheme
	s.mu.Unlock()
	return palette.Generate(base, scheme)
}

// LoadSurface makes surface the image colours are picked from. Colours
// picked from the previous image are discarded.
func (s *Session) LoadSurface(surface *imaging.Surface) {
	s.mu.Lock()
	s.surface = surface
	s.picked = nil
	s.mu.Unlock()
}

// Surface returns the loaded surface, or nil.
func (s *Session) Surface() *imaging.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// ClearSurface unloads the image and its picked colours.
func (s *Session) ClearSurface() {
	s.LoadSurface(nil)
}

// Peek samples the colour under the pointer without recording it.
func (s *Session) Peek(rect imaging.DisplayRect, clientX, clientY float64) (imaging.PickedColor, bool) {
	return imaging.ColorAtPosition(s.Surface(), rect, clientX, clientY)
}

// Pick samples the colour under the pointer, appends it to the picked list
// and makes it the base colour. The boolean is false when nothing is loaded
// or the coordinates are unusable, in which case the session is unchanged.
func (s *Session) Pick(rect imaging.DisplayRect, clientX, clientY float64) (imaging.PickedColor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := imaging.ColorAtPosition(s.surface, rect, clientX, clientY)
	if !ok {
		return imaging.PickedColor{}, false
	}
	s.picked = append(s.picked, c)
	s.base = c.Hex
	return c, true
}

// Picked returns the picked colours in the order they were picked.
func (s *Session) Picked() []imaging.PickedColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]imaging.PickedColor(nil), s.picked...)
}

// RemovePicked deletes the i'th picked colour.
func (s *Session) RemovePicked(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.picked) {
		return fmt.Errorf("remove %d of %d: %w", i, len(s.picked), ErrIndexOutOfRange)
	}
	s.picked = append(s.picked[:i:i], s.picked[i+1:]...)
	return nil
}

// UsePicked makes the i'th picked colour the base colour.
func (s *Session) UsePicked(i int) (imaging.PickedColor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.picked) {
		return imaging.PickedColor{}, fmt.Errorf("use %d of %d: %w", i, len(s.picked), ErrIndexOutOfRange)
	}
	c := s.picked[i]
	s.base = c.Hex
	return c, nil
}

// ApplyPreset sets the base colour to the first colour of the named preset
// and switches to the preset's scheme.
func (s *Session) ApplyPreset(name string) (palette.Preset, error) {
	p, ok := palette.PresetByName(name)
	if !ok {
		return palette.Preset{}, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
	}

	s.mu.Lock()
	s.base = p.Colors[0]
	s.scheme = p.Scheme
	s.mu.Unlock()
	return p, nil
}

// State is a point-in-time view of a session.
type State struct {
	Base        string              `json:"base"`
	Scheme      palette.Scheme      `json:"scheme"`
	Palette     []string            `json:"palette"`
	Surface     *imaging.Dimensions `json:"surface"`
	PickedCount int                 `json:"picked_count"`
}

// Snapshot captures the session's current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Base:        s.base,
		Scheme:      s.scheme,
		Palette:     palette.Generate(s.base, s.scheme),
		PickedCount: len(s.picked),
	}
	if s.surface != nil {
		d := s.surface.Dimensions()
		st.Surface = &d
	}
	return st
}
