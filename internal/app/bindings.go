package app

import (
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/viewer"
)

// Bindings maps keys to viewer commands.
type Bindings map[sdl.Keycode]viewer.Command

// ParseBindings resolves a config command->key-name map.
func ParseBindings(names map[string]string) (Bindings, error) {
	return parseBindings(names, input.ParseKey)
}

func parseBindings(names map[string]string, resolve func(string) (sdl.Keycode, error)) (Bindings, error) {
	// Sorted for deterministic error messages.
	commands := make([]string, 0, len(names))
	for name := range names {
		commands = append(commands, name)
	}
	sort.Strings(commands)

	b := make(Bindings, len(names))
	for _, name := range commands {
		cmd, ok := viewer.ParseCommand(name)
		if !ok {
			return nil, fmt.Errorf("binding %q: unknown command", name)
		}
		key, err := resolve(names[name])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
		if prev, dup := b[key]; dup {
			return nil, fmt.Errorf("binding %q: key %q already bound to %s", name, names[name], prev)
		}
		b[key] = cmd
	}
	return b, nil
}

// Lookup returns the command bound to key.
func (b Bindings) Lookup(key sdl.Keycode) (viewer.Command, bool) {
	cmd, ok := b[key]
	return cmd, ok
}
