package quest

import (
	"strconv"
	"strings"
)

// Tooltip is everything a quest tooltip displays.
type Tooltip struct {
	Title       string   `json:"title"`
	Completed   []string `json:"completed"`
	Outstanding []string `json:"outstanding"`
	Rewards     string   `json:"rewards"`
}

// NewTooltip collects the display strings for s.
func NewTooltip(s Status) Tooltip {
	q := s.Quest()
	return Tooltip{
		Title:       q.Title,
		Completed:   s.CompletedObjectives(),
		Outstanding: s.OutstandingObjectives(),
		Rewards:     FormatRewards(q.Rewards),
	}
}

// FormatRewards renders rewards as a comma separated list. Rewards of fewer
// than one item are left out and single items are shown without a count,
// e.g. "Sword, 3 Potion".
func FormatRewards(rewards []Reward) string {
	texts := make([]string, 0, len(rewards))
	for _, r := range rewards {
		switch {
		case r.Number < 1 || r.Item == nil:
			continue
		case r.Number == 1:
			texts = append(texts, r.Item.DisplayName())
		default:
			texts = append(texts, strconv.Itoa(r.Number)+" "+r.Item.DisplayName())
		}
	}
	return strings.Join(texts, ", ")
}
