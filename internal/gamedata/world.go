package gamedata

// TerrainDef defines a terrain type of the world map.
type TerrainDef struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Glyph           string  `yaml:"glyph"`
	Color           string  `yaml:"color"`
	MovementCost    float64 `yaml:"movementCost"`    // Fatigue and time added per step
	EncounterChance float64 `yaml:"encounterChance"` // Base chance of a fight per step
	Description     string  `yaml:"description"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (t *TerrainDef) GlyphRune() rune {
	if len(t.Glyph) == 0 {
		return '?'
	}
	return []rune(t.Glyph)[0]
}

// PointDef is a fixed position in the world.
type PointDef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// PointOfInterestDef marks a notable location and the quests it advances.
type PointOfInterestDef struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Description string   `yaml:"description"`
	Completes   []string `yaml:"completes"`
	Activates   []string `yaml:"activates"`
	Message     string   `yaml:"message"`
}

// WorldDef represents the structure of world.yaml.
type WorldDef struct {
	Name             string               `yaml:"name"`
	Start            PointDef             `yaml:"start"`
	Terrain          []TerrainDef         `yaml:"terrain"`
	Layout           [][]string           `yaml:"layout"`
	PointsOfInterest []PointOfInterestDef `yaml:"pointsOfInterest"`
}

// LoadWorld loads the world map definition from world.yaml.
func LoadWorld() (*WorldDef, error) {
	def, err := Load[WorldDef]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// QuestDef defines a quest and its starting status.
type QuestDef struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"` // "open", "active" or "completed"
}

// QuestsFile represents the structure of quests.yaml.
type QuestsFile struct {
	Quests []QuestDef `yaml:"quests"`
}

// LoadQuests loads the quest list from quests.yaml.
func LoadQuests() ([]QuestDef, error) {
	file, err := Load[QuestsFile]("quests.yaml")
	if err != nil {
		return nil, err
	}
	return file.Quests, nil
}
