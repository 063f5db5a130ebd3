package ui

import (
	"sync"

	"taskflow/internal/domain"
)

// Role names a styled piece of output.
type Role int

const (
	RoleText Role = iota
	RoleMuted
	RoleAccent
	RoleError
	RoleSuccess
)

const reset = "\x1b[0m"

// SGR sequences per mode. Dark backgrounds get the bright variants.
var styles = map[domain.Mode]map[Role]string{
	domain.ModeLight: {
		RoleText:    "\x1b[30m",
		RoleMuted:   "\x1b[90m",
		RoleAccent:  "\x1b[35m",
		RoleError:   "\x1b[31m",
		RoleSuccess: "\x1b[32m",
	},
	domain.ModeDark: {
		RoleText:    "\x1b[97m",
		RoleMuted:   "\x1b[37m",
		RoleAccent:  "\x1b[95m",
		RoleError:   "\x1b[91m",
		RoleSuccess: "\x1b[92m",
	},
}

// Palette is the process-wide presentation marker: it holds exactly one mode
// class at a time, and renderers style output through it.
type Palette struct {
	mu    sync.RWMutex
	mode  domain.Mode
	plain bool
}

// NewPalette returns a palette in light mode. Until the preference store
// applies the resolved mode it should not be rendered with.
func NewPalette() *Palette { return &Palette{mode: domain.ModeLight} }

// NewPlainPalette returns a palette that tracks the mode but never emits
// escape sequences (non-terminal output).
func NewPlainPalette() *Palette { return &Palette{mode: domain.ModeLight, plain: true} }

// Apply implements domain.Marker.
func (p *Palette) Apply(mode domain.Mode) {
	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()
}

// Mode returns the applied mode.
func (p *Palette) Mode() domain.Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// Class is the style-scope name of the applied mode.
func (p *Palette) Class() string { return p.Mode().String() }

// Paint wraps s in the escape sequence for role under the current mode.
func (p *Palette) Paint(role Role, s string) string {
	p.mu.RLock()
	mode, plain := p.mode, p.plain
	p.mu.RUnlock()
	if plain {
		return s
	}
	code, ok := styles[mode][role]
	if !ok {
		return s
	}
	return code + s + reset
}

var _ domain.Marker = (*Palette)(nil)
