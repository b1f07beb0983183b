package quest

import "slices"

// Item is anything that can be handed out as a reward.
type Item interface {
	DisplayName() string
}

// NamedItem is an Item identified only by its display name.
type NamedItem string

func (n NamedItem) DisplayName() string { return string(n) }

// Reward grants Number copies of Item.
type Reward struct {
	Number int
	Item   Item
}

// Objective is a single step of a quest.
type Objective struct {
	Ref         string
	Description string
}

// Quest is the static definition of a quest.
type Quest struct {
	ID         string
	Title      string
	Objectives []Objective
	Rewards    []Reward
}

// Status is the read-only view of a player's progress through a quest.
type Status interface {
	Quest() *Quest
	CompletedObjectives() []string
	OutstandingObjectives() []string
}

// progress is a Status backed by a set of completed objective refs.
type progress struct {
	quest     *Quest
	completed map[string]struct{}
}

// NewStatus reports q with the objectives named in completed marked done.
// Refs that are not objectives of q are ignored.
func NewStatus(q *Quest, completed []string) Status {
	done := make(map[string]struct{}, len(completed))
	for _, ref := range completed {
		done[ref] = struct{}{}
	}
	return &progress{quest: q, completed: done}
}

func (p *progress) Quest() *Quest { return p.quest }

func (p *progress) CompletedObjectives() []string {
	return p.objectives(true)
}

func (p *progress) OutstandingObjectives() []string {
	return p.objectives(false)
}

func (p *progress) objectives(completed bool) []string {
	out := make([]string, 0, len(p.quest.Objectives))
	for _, o := range p.quest.Objectives {
		if _, ok := p.completed[o.Ref]; ok == completed {
			out = append(out, o.Description)
		}
	}
	return slices.Clip(out)
}
