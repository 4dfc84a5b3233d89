package gamedata

// ActionDef defines a combat action offered to heroes, loaded from actions.yaml.
// The ID matches the action kind understood by the combat engine.
type ActionDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Keys        []string `yaml:"keys"` // Hotkeys, first one is shown in menus
	Description string   `yaml:"description"`
	NeedsTarget bool     `yaml:"needsTarget"`
	AstralCost  int      `yaml:"astralCost"`
}

// HotkeyLabel returns the primary hotkey for display.
func (a *ActionDef) HotkeyLabel() string {
	if len(a.Keys) == 0 {
		return "?"
	}
	return a.Keys[0]
}

// ActionsFile represents the structure of actions.yaml.
type ActionsFile struct {
	Actions []ActionDef `yaml:"actions"`
}

// LoadActions loads combat action definitions from actions.yaml.
func LoadActions() ([]ActionDef, error) {
	file, err := Load[ActionsFile]("actions.yaml")
	if err != nil {
		return nil, err
	}
	return file.Actions, nil
}
