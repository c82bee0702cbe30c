package core

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

// Search returns the commands visible in scope, filtered and ranked by
// query. Substring hits come first; near-misses are kept when the edit
// distance to the command name is small, so a typo like "consumtion" still
// finds its target.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))

	type scored struct {
		result CommandResult
		rank   int
	}
	results := make([]scored, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		rank := matchRank(c, q)
		if rank < 0 {
			continue
		}
		disabled := false
		reason := ""
		if c.Disabled != nil {
			disabled, reason = c.Disabled(m)
		}
		results = append(results, scored{
			result: CommandResult{
				CommandID: c.ID,
				Name:      c.Name,
				Desc:      c.Description,
				Disabled:  disabled,
				Reason:    reason,
			},
			rank: rank,
		})
	}
	slices.SortFunc(results, func(a, b scored) int {
		if a.result.Disabled != b.result.Disabled {
			if !a.result.Disabled {
				return -1
			}
			return 1
		}
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return strings.Compare(a.result.Name, b.result.Name)
	})
	out := make([]CommandResult, len(results))
	for i, s := range results {
		out[i] = s.result
	}
	return out
}

// matchRank returns -1 for no match, otherwise lower is better: 0 for
// substring hits, 1+distance for fuzzy name matches.
func matchRank(c Command, q string) int {
	if q == "" {
		return 0
	}
	haystack := strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
	if strings.Contains(haystack, q) {
		return 0
	}
	name := strings.ToLower(c.Name)
	dist := levenshtein.ComputeDistance(q, name)
	if dist <= len(name)/2 {
		return 1 + dist
	}
	return -1
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		disabled, reason := c.Disabled(m)
		if disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
