package config

// Document is the top-level YAML structure.
type Document struct {
	Version  string      `yaml:"version" validate:"required"`
	Server   ServerConf  `yaml:"server"`
	Dialogue DialogueDef `yaml:"dialogue"`
	Quests   []QuestDef  `yaml:"quests" validate:"dive"`
}

// ServerConf holds the editor API listener settings.
type ServerConf struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"read_timeout_ms" validate:"gte=0"`
	WriteTimeoutMs int    `yaml:"write_timeout_ms" validate:"gte=0"`
}

// DialogueDef describes one dialogue graph. Node order is significant: it
// is the order roots are listed in and parents are discovered in.
type DialogueDef struct {
	ID          string    `yaml:"id"`
	PlayerFirst *bool     `yaml:"player_first"` // nil = player opens
	Nodes       []NodeDef `yaml:"nodes" validate:"dive"`
}

// IsPlayerFirst reports who opens the dialogue.
func (d DialogueDef) IsPlayerFirst() bool {
	return d.PlayerFirst == nil || *d.PlayerFirst
}

// NodeDef is a single dialogue turn. Children reference other node ids;
// references that do not resolve or do not alternate speakers are dropped
// when loaded.
type NodeDef struct {
	ID       string      `yaml:"id" json:"id" validate:"required"`
	Player   bool        `yaml:"player" json:"player"`
	Text     string      `yaml:"text" json:"text"`
	Position PositionDef `yaml:"position" json:"position"`
	Children []string    `yaml:"children" json:"children" validate:"dive,required"`
}

// PositionDef is the editor-space position of a node.
type PositionDef struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// QuestDef describes a quest and the player's progress through it.
type QuestDef struct {
	ID         string         `yaml:"id" validate:"required"`
	Title      string         `yaml:"title" validate:"required"`
	Objectives []ObjectiveDef `yaml:"objectives" validate:"dive"`
	Completed  []string       `yaml:"completed"`
	Rewards    []RewardDef    `yaml:"rewards" validate:"dive"`
}

// ObjectiveDef is one step of a quest.
type ObjectiveDef struct {
	Ref         string `yaml:"ref" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

// RewardDef grants Number copies of Item. Counts below one are allowed and
// simply not shown.
type RewardDef struct {
	Number int    `yaml:"number"`
	Item   string `yaml:"item" validate:"required"`
}
