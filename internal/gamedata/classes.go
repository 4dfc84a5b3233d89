package gamedata

// AttributesDef holds the eight base attributes of a class.
type AttributesDef struct {
	Courage      int `yaml:"courage"`
	Intellect    int `yaml:"intellect"`
	Intuition    int `yaml:"intuition"`
	Charisma     int `yaml:"charisma"`
	Dexterity    int `yaml:"dexterity"`
	Agility      int `yaml:"agility"`
	Constitution int `yaml:"constitution"`
	Strength     int `yaml:"strength"`
}

// ClassDef defines a playable class loaded from classes.yaml.
type ClassDef struct {
	ID              string        `yaml:"id"`     // Unique identifier (e.g., "warrior")
	Name            string        `yaml:"name"`   // Display name (e.g., "Warrior")
	Symbol          string        `yaml:"symbol"` // Single character for rendering (e.g., "W")
	Description     string        `yaml:"description"`
	DefaultWeapon   string        `yaml:"defaultWeapon"`
	NameSuggestions []string      `yaml:"nameSuggestions"`
	Attributes      AttributesDef `yaml:"attributes"`
	Skills          []string      `yaml:"skills"`
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// DefaultName returns the first name suggestion, or the class name.
func (c *ClassDef) DefaultName() string {
	if len(c.NameSuggestions) == 0 {
		return c.Name
	}
	return c.NameSuggestions[0]
}

// ClassesFile represents the structure of classes.yaml.
type ClassesFile struct {
	Classes []ClassDef `yaml:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.yaml file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.yaml")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

// PartyMemberDef describes one member of the starting party.
// Zero values fall back to the class defaults.
type PartyMemberDef struct {
	Class     string   `yaml:"class"`
	Name      string   `yaml:"name"`
	Armor     *int     `yaml:"armor"`
	Weapon    string   `yaml:"weapon"`
	Inventory []string `yaml:"inventory"`
}

// PartyFile represents the structure of party.yaml.
type PartyFile struct {
	Party []PartyMemberDef `yaml:"party"`
}

// LoadParty loads the default party from the embedded party.yaml file.
func LoadParty() ([]PartyMemberDef, error) {
	file, err := Load[PartyFile]("party.yaml")
	if err != nil {
		return nil, err
	}
	return file.Party, nil
}
