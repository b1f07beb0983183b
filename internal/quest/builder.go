package quest

import "github.com/gyaneshwarpardhi/dialoguegraph/internal/config"

// Build turns quest definitions into statuses keyed by quest id.
func Build(defs []config.QuestDef) map[string]Status {
	out := make(map[string]Status, len(defs))
	for _, def := range defs {
		q := &Quest{ID: def.ID, Title: def.Title}
		for _, o := range def.Objectives {
			q.Objectives = append(q.Objectives, Objective{Ref: o.Ref, Description: o.Description})
		}
		for _, r := range def.Rewards {
			q.Rewards = append(q.Rewards, Reward{Number: r.Number, Item: NamedItem(r.Item)})
		}
		out[def.ID] = NewStatus(q, def.Completed)
	}
	return out
}
