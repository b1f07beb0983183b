package editor_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/editor"
)

func testDoc() *config.Document {
	return &config.Document{
		Version: "v1",
		Dialogue: config.DialogueDef{
			ID: "guard",
			Nodes: []config.NodeDef{
				{ID: "greet", Player: true, Text: "Hello there.", Children: []string{"reply"}},
				{ID: "reply", Player: false, Text: "Move along."},
			},
		},
		Quests: []config.QuestDef{{
			ID:         "sword",
			Title:      "The Lost Sword",
			Objectives: []config.ObjectiveDef{{Ref: "talk", Description: "Talk to the guard"}},
			Rewards:    []config.RewardDef{{Number: 1, Item: "Sword"}},
		}},
	}
}

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	e, err := editor.New(testDoc(), nil)
	require.NoError(t, err)
	return e
}

func TestEditor_Snapshot(t *testing.T) {
	e := newEditor(t)

	s := e.Snapshot()
	assert.Equal(t, "guard", s.ID)
	assert.True(t, s.PlayerFirst)
	assert.Equal(t, []string{"greet"}, s.Roots)
	require.Len(t, s.Nodes, 2)
	assert.Equal(t, []string{"reply"}, s.Nodes[0].Children)
}

func TestEditor_CreateAndDelete(t *testing.T) {
	e := newEditor(t)

	created, err := e.CreateNode("reply")
	require.NoError(t, err)
	assert.True(t, created.Player)

	children, err := e.Children("reply")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, created.ID, children[0].ID)

	loose, err := e.CreateNode("")
	require.NoError(t, err)
	assert.False(t, loose.Player)
	roots, err := e.Children("")
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, loose.ID, roots[1].ID)

	require.NoError(t, e.DeleteNode(created.ID))
	children, err = e.Children("reply")
	require.NoError(t, err)
	assert.Empty(t, children)

	_, err = e.CreateNode("missing")
	assert.ErrorIs(t, err, editor.ErrNodeNotFound)
	assert.ErrorIs(t, e.DeleteNode("missing"), editor.ErrNodeNotFound)
}

func TestEditor_SpeakerAndEdges(t *testing.T) {
	e := newEditor(t)

	n, err := e.SetSpeaker("reply", true)
	require.NoError(t, err)
	assert.True(t, n.Player)
	assert.ElementsMatch(t, []string{"greet", "reply"}, e.Snapshot().Roots)

	n, err = e.AddChild("greet", "reply")
	require.NoError(t, err)
	assert.Empty(t, n.Children, "edge between two player turns is dropped")

	_, err = e.SetSpeaker("reply", false)
	require.NoError(t, err)
	n, err = e.AddChild("greet", "reply")
	require.NoError(t, err)
	assert.Equal(t, []string{"reply"}, n.Children)

	n, err = e.RemoveChild("greet", "reply")
	require.NoError(t, err)
	assert.Empty(t, n.Children)

	_, err = e.AddChild("greet", "missing")
	assert.ErrorIs(t, err, editor.ErrNodeNotFound)

	n, err = e.SetText("greet", "Halt!")
	require.NoError(t, err)
	assert.Equal(t, "Halt!", n.Text)
}

func TestEditor_Tooltip(t *testing.T) {
	e := newEditor(t)

	tip, err := e.Tooltip("sword")
	require.NoError(t, err)
	assert.Equal(t, "The Lost Sword", tip.Title)
	assert.Equal(t, []string{"Talk to the guard"}, tip.Outstanding)
	assert.Equal(t, "Sword", tip.Rewards)

	_, err = e.Tooltip("nope")
	assert.ErrorIs(t, err, editor.ErrQuestNotFound)
}

func TestEditor_Swap(t *testing.T) {
	e := newEditor(t)

	doc := testDoc()
	doc.Dialogue.ID = "merchant"
	doc.Dialogue.Nodes = []config.NodeDef{{ID: "offer", Player: false}}
	require.NoError(t, e.Swap(doc))
	assert.Equal(t, "merchant", e.Snapshot().ID)
	assert.Equal(t, []string{"offer"}, e.Snapshot().Roots)

	bad := testDoc()
	bad.Dialogue.Nodes = []config.NodeDef{{ID: "x"}, {ID: "x"}}
	assert.Error(t, e.Swap(bad))
	assert.Equal(t, "merchant", e.Snapshot().ID, "failed swap keeps the session")
}

func TestEditor_Walk(t *testing.T) {
	e := newEditor(t)

	var visited []string
	e.Walk(func(n config.NodeDef, depth int) {
		visited = append(visited, n.ID)
		if n.ID == "reply" {
			assert.Equal(t, 1, depth)
		}
	})
	assert.Equal(t, []string{"greet", "reply"}, visited)
}

func TestEditor_ConcurrentEdits(t *testing.T) {
	e := newEditor(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := e.CreateNode("greet")
			if assert.NoError(t, err) {
				_, err = e.CreateNode(n.ID)
				assert.NoError(t, err)
			}
			_ = e.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, e.Snapshot().Nodes, 2+32)
}

func TestEditor_FollowLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v1\ndialogue:\n  id: a\n  nodes: [{ id: one }]\n"), 0o644))
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	e, err := editor.New(l.Config(), nil)
	require.NoError(t, err)
	e.Follow(l)

	require.NoError(t, os.WriteFile(path, []byte("version: v1\ndialogue:\n  id: b\n  nodes: [{ id: two }]\n"), 0o644))
	_, err = l.Reload()
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, e.Snapshot().Roots)

	require.NoError(t, os.WriteFile(path, []byte("dialogue:\n  id: c\n"), 0o644))
	_, err = l.Reload()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Equal(t, "b", e.Snapshot().ID, "documents failing validation are skipped")
}
