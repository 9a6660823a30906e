// Package xsection cuts the layer stack along a segment and synthesizes
// thin oxide interface layers in the resulting 2D cell.
package xsection

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/layers"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

// Level is the vertical extent of a layer in micrometers.
type Level struct {
	Bottom float64
	Top    float64
}

// Profile tells how layers appear in a cross-section.
type Profile interface {
	// Level returns vertical extent, false if layer is not drawn.
	Level(layer string) (Level, bool)
	// Dominant returns pattern of layers that shadow layer, nil if none.
	Dominant(layer string) *regexp.Regexp
	// ChangeTo returns name the layer is merged into.
	ChangeTo(layer string) string
	Visible(layer string) bool
}

// StackProfile is a profile derived from finalized layer entries with
// optional per-layer overrides.
type StackProfile struct {
	names     []string
	levels    map[string]Level
	dominant  map[string]*regexp.Regexp
	changeTo  map[string]string
	invisible map[string]bool
}

// NewStackProfile uses entry z-ranges as levels and entry subtract lists
// as dominant layers.
func NewStackProfile(entries []layers.Entry, overrides map[string]setup.ProfileEntry) (*StackProfile, error) {
	p := &StackProfile{
		levels:    map[string]Level{},
		dominant:  map[string]*regexp.Regexp{},
		changeTo:  map[string]string{},
		invisible: map[string]bool{},
	}
	for _, e := range entries {
		p.names = append(p.names, e.Name)
		p.levels[e.Name] = Level{Bottom: e.Z, Top: e.Top()}
		if len(e.Subtract) > 0 {
			p.dominant[e.Name] = namesPattern(e.Subtract)
		}
	}

	keys := make([]string, 0, len(overrides))
	for name := range overrides {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		o := overrides[name]
		if _, ok := p.levels[name]; !ok {
			return nil, stack.ConfigError("profile refers to unknown layer %q", name)
		}
		if len(o.Levels) == 2 {
			p.levels[name] = Level{Bottom: o.Levels[0], Top: o.Levels[1]}
		}
		if o.Dominant != "" {
			re, err := regexp.Compile(o.Dominant)
			if err != nil {
				return nil, stack.ConfigError("profile of %q: %s", name, err)
			}
			p.dominant[name] = re
		}
		if o.ChangeTo != "" {
			p.changeTo[name] = o.ChangeTo
		}
		p.invisible[name] = o.Invisible
	}
	return p, nil
}

func namesPattern(names []string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile("^(" + strings.Join(quoted, "|") + ")$")
}

// Names returns layer names in entry order.
func (p *StackProfile) Names() []string {
	return p.names
}

// Level ...
func (p *StackProfile) Level(layer string) (Level, bool) {
	l, ok := p.levels[layer]
	return l, ok
}

// Dominant ...
func (p *StackProfile) Dominant(layer string) *regexp.Regexp {
	return p.dominant[layer]
}

// ChangeTo ...
func (p *StackProfile) ChangeTo(layer string) string {
	return p.changeTo[layer]
}

// Visible ...
func (p *StackProfile) Visible(layer string) bool {
	return !p.invisible[layer]
}
