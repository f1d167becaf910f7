package orb

import (
	"fmt"
	"strings"
	"sync"
)

// FocusState is what the surrounding UI is pointing at.
type FocusState int

const (
	FocusIdle FocusState = iota
	FocusSocialX
	FocusSocialGithub
	FocusEmail
	FocusWork
	FocusLocation

	FocusStateSize
)

var FocusStateStrs = [FocusStateSize]string{
	"idle",
	"social-x",
	"social-github",
	"email",
	"work",
	"location",
}

func (s FocusState) Valid() bool {
	return 0 <= s && s < FocusStateSize
}

func (s FocusState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("FocusState(%d)", int(s))
	}
	return FocusStateStrs[s]
}

func ParseFocusState(str string) (FocusState, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	for i, name := range FocusStateStrs {
		if name == str {
			return FocusState(i), nil
		}
	}
	return FocusIdle, fmt.Errorf("unknown focus state %q", str)
}

// FocusSelector holds the current focus state and resolves
// it to colors through a palette.
//
// Safe for concurrent use.
type FocusSelector struct {
	mu      sync.Mutex
	state   FocusState
	palette Palette
}

func NewFocusSelector(palette Palette) *FocusSelector {
	return &FocusSelector{palette: palette}
}

// Set changes the focus state. Invalid values select FocusIdle.
// Returns true if the state actually changed.
func (fs *FocusSelector) Set(state FocusState) bool {
	if !state.Valid() {
		state = FocusIdle
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	changed := fs.state != state
	fs.state = state
	return changed
}

func (fs *FocusSelector) State() FocusState {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.state
}

func (fs *FocusSelector) Colors() FocusColors {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.palette.Lookup(fs.state)
}

func (fs *FocusSelector) Palette() Palette {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.palette
}

func (fs *FocusSelector) SetPalette(palette Palette) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.palette = palette
}
