package quest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/quest"
)

func TestFormatRewards(t *testing.T) {
	cases := []struct {
		name    string
		rewards []quest.Reward
		want    string
	}{
		{
			name: "skips empty and counts multiples",
			rewards: []quest.Reward{
				{Number: 0, Item: quest.NamedItem("itemA")},
				{Number: 1, Item: quest.NamedItem("itemB")},
				{Number: 3, Item: quest.NamedItem("itemC")},
			},
			want: "itemB, 3 itemC",
		},
		{
			name:    "negative count",
			rewards: []quest.Reward{{Number: -2, Item: quest.NamedItem("Gold")}},
			want:    "",
		},
		{
			name:    "nothing",
			rewards: nil,
			want:    "",
		},
		{
			name: "missing item",
			rewards: []quest.Reward{
				{Number: 2, Item: nil},
				{Number: 1, Item: quest.NamedItem("Map")},
			},
			want: "Map",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, quest.FormatRewards(tc.rewards))
		})
	}
}

func TestNewTooltip(t *testing.T) {
	q := &quest.Quest{
		ID:    "lost-sword",
		Title: "The Lost Sword",
		Objectives: []quest.Objective{
			{Ref: "talk", Description: "Talk to the guard"},
			{Ref: "find", Description: "Find the sword"},
			{Ref: "return", Description: "Return the sword"},
		},
		Rewards: []quest.Reward{
			{Number: 1, Item: quest.NamedItem("Sword")},
			{Number: 5, Item: quest.NamedItem("Potion")},
		},
	}

	tip := quest.NewTooltip(quest.NewStatus(q, []string{"return", "talk", "unrelated"}))

	assert.Equal(t, "The Lost Sword", tip.Title)
	assert.Equal(t, []string{"Talk to the guard", "Return the sword"}, tip.Completed)
	assert.Equal(t, []string{"Find the sword"}, tip.Outstanding)
	assert.Equal(t, "Sword, 5 Potion", tip.Rewards)
}

func TestBuild(t *testing.T) {
	statuses := quest.Build([]config.QuestDef{{
		ID:    "sword",
		Title: "The Lost Sword",
		Objectives: []config.ObjectiveDef{
			{Ref: "talk", Description: "Talk to the guard"},
			{Ref: "find", Description: "Find the sword"},
		},
		Completed: []string{"talk"},
		Rewards:   []config.RewardDef{{Number: 0, Item: "Nothing"}, {Number: 2, Item: "Potion"}},
	}})

	require.Contains(t, statuses, "sword")
	tip := quest.NewTooltip(statuses["sword"])
	assert.Equal(t, []string{"Talk to the guard"}, tip.Completed)
	assert.Equal(t, []string{"Find the sword"}, tip.Outstanding)
	assert.Equal(t, "2 Potion", tip.Rewards)
}
