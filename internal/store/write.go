package store

import (
	"context"
	"fmt"

	"github.com/roach88/aliasdex/internal/catalog"
)

// InsertAlias appends one alias row. Duplicate texts under the same key are
// allowed; no uniqueness check is made.
func (s *Store) InsertAlias(ctx context.Context, alias catalog.Alias) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO POKEMON_NAME_ALIAS (NAME_ALIAS, NDEX_NUMBER, FORM_ID)
		VALUES (?, ?, ?)
	`, alias.Text, alias.EntityID, alias.FormID)
	if err != nil {
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}

// UpdateAlias rewrites every alias under key whose text equals oldText.
// Returns the number of rows changed.
func (s *Store) UpdateAlias(ctx context.Context, key catalog.Key, oldText, newText string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE POKEMON_NAME_ALIAS SET NAME_ALIAS = ?
		WHERE NAME_ALIAS = ? AND NDEX_NUMBER = ? AND FORM_ID = ?
	`, newText, oldText, key.EntityID, key.FormID)
	if err != nil {
		return 0, fmt.Errorf("update alias: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update alias: rows affected: %w", err)
	}
	return n, nil
}

// DeleteAlias removes every alias under key whose text equals text.
// Returns the number of rows removed.
func (s *Store) DeleteAlias(ctx context.Context, key catalog.Key, text string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM POKEMON_NAME_ALIAS
		WHERE NAME_ALIAS = ? AND NDEX_NUMBER = ? AND FORM_ID = ?
	`, text, key.EntityID, key.FormID)
	if err != nil {
		return 0, fmt.Errorf("delete alias: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete alias: rows affected: %w", err)
	}
	return n, nil
}

// InsertEntity provisions one entity name row.
func (s *Store) InsertEntity(ctx context.Context, e catalog.Entity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO POKEMON_NAME (NAME, NDEX_NUMBER) VALUES (?, ?)
	`, e.Name, e.ID)
	if err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

// InsertForm provisions one form row. Nil Name or Gender is stored as NULL.
func (s *Store) InsertForm(ctx context.Context, f catalog.Form) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO POKEMON_NAME_FORM (NDEX_NUMBER, FORM_ID, FORM_NAME, GENDER)
		VALUES (?, ?, ?, ?)
	`, f.EntityID, f.FormID, f.Name, f.Gender)
	if err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}
