package main

import "strings"

// commandPrefix marks a buffer as a command invocation.
const commandPrefix = "/"

// Palette is the filtered, navigable overlay of command names shown under
// the input line while the buffer looks like a command prefix.
type Palette struct {
	registry   *CommandRegistry
	visible    bool
	candidates []Command
	selected   int
}

func NewPalette(registry *CommandRegistry) *Palette {
	return &Palette{registry: registry}
}

func (p *Palette) Visible() bool {
	return p.visible
}

func (p *Palette) Candidates() []Command {
	return p.candidates
}

func (p *Palette) Selected() int {
	return p.selected
}

// Update recomputes the candidate set from the buffer text. The palette is
// visible iff the text is non-empty and command-prefixed. The selection
// resets to 0 whenever the candidate set changes identity, not just size.
func (p *Palette) Update(text string) {
	if !strings.HasPrefix(text, commandPrefix) || text == "" {
		p.Close()
		return
	}

	candidates := filterCommands(p.registry, text)
	if !sameCandidates(p.candidates, candidates) {
		p.selected = 0
	}
	p.candidates = candidates
	p.visible = true
}

// Close hides the palette without touching the buffer.
func (p *Palette) Close() {
	p.visible = false
	p.candidates = nil
	p.selected = 0
}

// MoveUp and MoveDown wrap around the candidate list.
func (p *Palette) MoveUp() {
	if n := len(p.candidates); n > 0 {
		p.selected = (p.selected - 1 + n) % n
	}
}

func (p *Palette) MoveDown() {
	if n := len(p.candidates); n > 0 {
		p.selected = (p.selected + 1) % n
	}
}

// Accept returns the selected candidate and closes the palette.
func (p *Palette) Accept() (Command, bool) {
	if !p.visible || len(p.candidates) == 0 {
		return Command{}, false
	}
	cmd := p.candidates[p.selected]
	p.Close()
	return cmd, true
}

// AutoDispatch reports the command to dispatch without waiting for Enter.
// The fast path fires once the filter narrows to a single candidate; the
// bare prefix character alone never fires even when the registry holds
// one command. It also holds back while the text could still grow into
// another command's alias, so typing an alias in full stays possible.
func (p *Palette) AutoDispatch(text string) (Command, bool) {
	if !p.visible || len(p.candidates) != 1 {
		return Command{}, false
	}
	if len(text) <= len(commandPrefix) {
		return Command{}, false
	}
	lower := strings.ToLower(text)
	for _, cmd := range p.registry.All() {
		if cmd.Name == p.candidates[0].Name {
			continue
		}
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(alias, lower) {
				return Command{}, false
			}
		}
	}
	return p.candidates[0], true
}

// filterCommands returns the registry entries whose name starts with the
// lowercased text, preserving registration order.
func filterCommands(registry *CommandRegistry, text string) []Command {
	lower := strings.ToLower(text)
	var matches []Command
	for _, cmd := range registry.All() {
		if strings.HasPrefix(cmd.Name, lower) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

func sameCandidates(a, b []Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
