package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines an enemy template loaded from enemies.yaml.
type EnemyDef struct {
	ID          string `yaml:"id"`          // Unique identifier (e.g., "goblin-scout")
	Name        string `yaml:"name"`        // Display name (e.g., "Goblin Scout")
	Glyph       string `yaml:"glyph"`       // Single character for rendering
	Color       string `yaml:"color"`       // Hex color code (e.g., "#00FF00")
	Threat      int    `yaml:"threat"`      // Difficulty scalar, scales outgoing damage
	HP          int    `yaml:"hp"`          // Life energy
	Attack      int    `yaml:"attack"`      // Attack value
	Defense     int    `yaml:"defense"`     // Defense value
	Initiative  int    `yaml:"initiative"`  // Turn order priority
	SpawnWeight int    `yaml:"spawnWeight"` // Relative spawn frequency within its terrain
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	return ColorOr(e.Color, tcell.ColorWhite)
}

// EnemiesFile represents the structure of enemies.yaml.
type EnemiesFile struct {
	Encounters map[string][]EnemyDef `yaml:"encounters"`
}

// LoadEnemies loads the terrain-keyed enemy templates from enemies.yaml.
func LoadEnemies() (map[string][]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return file.Encounters, nil
}
