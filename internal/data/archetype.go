package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Archetype describes one spawnable entity kind.
type Archetype struct {
	Name          string `yaml:"name"`
	Count         int    `yaml:"count"`          // target population held by the spawn system
	LifetimeTicks int    `yaml:"lifetime_ticks"` // 0 = lives until destroyed explicitly
	Speed         int32  `yaml:"speed"`          // max tiles moved per tick
}

type archetypeFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// ArchetypeTable holds all archetype definitions indexed by name.
type ArchetypeTable struct {
	byName map[string]*Archetype
	list   []Archetype
}

// Get returns the archetype with the given name, or nil if none defined.
func (t *ArchetypeTable) Get(name string) *Archetype {
	return t.byName[name]
}

// All returns every archetype in file order.
func (t *ArchetypeTable) All() []Archetype {
	return t.list
}

// Count returns the number of archetypes.
func (t *ArchetypeTable) Count() int {
	return len(t.list)
}

// LoadArchetypeTable loads archetype definitions from a YAML file.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetype list: %w", err)
	}
	var f archetypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archetype list: %w", err)
	}
	t := &ArchetypeTable{
		byName: make(map[string]*Archetype, len(f.Archetypes)),
		list:   f.Archetypes,
	}
	for i := range t.list {
		at := &t.list[i]
		if at.Name == "" {
			return nil, fmt.Errorf("archetype %d: missing name", i)
		}
		if _, dup := t.byName[at.Name]; dup {
			return nil, fmt.Errorf("archetype %q: duplicate name", at.Name)
		}
		t.byName[at.Name] = at
	}
	return t, nil
}
