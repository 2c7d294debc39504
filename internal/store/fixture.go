package store

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/aliasdex/internal/catalog"
)

// Fixture is a bulk load of catalog rows, normally reference data.
//
//	entities:
//	  - { name: ポッポ, entity_id: 16 }
//	forms:
//	  - { entity_id: 16, form_id: 0, form_name: null, gender: null }
//	aliases:
//	  - { entity_id: 16, form_id: 0, alias: トリッピー }
type Fixture struct {
	Entities []catalog.Entity `yaml:"entities"`
	Forms    []catalog.Form   `yaml:"forms"`
	Aliases  []catalog.Alias  `yaml:"aliases"`
}

// LoadFixtureFile reads and parses a fixture YAML file.
// Unknown fields are rejected to catch typos.
func LoadFixtureFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}
	return &fx, nil
}

// LoadFixture inserts every row of fx in a single transaction.
// Either all rows are written or none are.
func (s *Store) LoadFixture(ctx context.Context, fx *Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load fixture: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for i, e := range fx.Entities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO POKEMON_NAME (NAME, NDEX_NUMBER) VALUES (?, ?)`,
			e.Name, e.ID); err != nil {
			return fmt.Errorf("load fixture: entities[%d]: %w", i, err)
		}
	}
	for i, f := range fx.Forms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO POKEMON_NAME_FORM (NDEX_NUMBER, FORM_ID, FORM_NAME, GENDER) VALUES (?, ?, ?, ?)`,
			f.EntityID, f.FormID, f.Name, f.Gender); err != nil {
			return fmt.Errorf("load fixture: forms[%d]: %w", i, err)
		}
	}
	for i, a := range fx.Aliases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO POKEMON_NAME_ALIAS (NAME_ALIAS, NDEX_NUMBER, FORM_ID) VALUES (?, ?, ?)`,
			a.Text, a.EntityID, a.FormID); err != nil {
			return fmt.Errorf("load fixture: aliases[%d]: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load fixture: commit: %w", err)
	}
	return nil
}
