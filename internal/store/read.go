package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/aliasdex/internal/catalog"
)

// SuggestNames returns entity names containing typed, ordered by entity number.
// An empty typed string matches every name.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) SuggestNames(ctx context.Context, typed string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT NAME FROM POKEMON_NAME
		WHERE NAME LIKE ?
		ORDER BY NDEX_NUMBER ASC, rowid ASC
	`, "%"+catalog.NormalizeText(typed)+"%")
	if err != nil {
		return nil, fmt.Errorf("suggest names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("suggest names: scan: %w", err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("suggest names: iterate: %w", err)
	}
	return names, nil
}

// EntityByName looks up an entity by its exact display name.
// A miss is reported through found=false, not an error.
func (s *Store) EntityByName(ctx context.Context, name string) (entity catalog.Entity, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT NAME, NDEX_NUMBER FROM POKEMON_NAME
		WHERE NAME = ?
		ORDER BY rowid ASC
		LIMIT 1
	`, name).Scan(&entity.Name, &entity.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Entity{}, false, nil
	}
	if err != nil {
		return catalog.Entity{}, false, fmt.Errorf("entity by name: %w", err)
	}
	return entity, true, nil
}

// Forms returns every form row of an entity in rowid order.
//
// Returns an empty slice (not nil) if the entity has no form rows.
func (s *Store) Forms(ctx context.Context, entityID int64) ([]catalog.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT NDEX_NUMBER, FORM_ID, FORM_NAME, GENDER
		FROM POKEMON_NAME_FORM
		WHERE NDEX_NUMBER = ?
		ORDER BY rowid ASC
	`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()

	forms := []catalog.Form{}
	for rows.Next() {
		var f catalog.Form
		var name, gender sql.NullString
		if err := rows.Scan(&f.EntityID, &f.FormID, &name, &gender); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		if name.Valid {
			f.Name = &name.String
		}
		if gender.Valid {
			f.Gender = &gender.String
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}
	return forms, nil
}

// FormIDForLabel finds the form of an entity whose FORM_NAME or GENDER equals
// label. When several rows match, the first in rowid order wins.
//
// The match runs over two columns, so it is not injective: two forms sharing
// a label string, or one form whose name and gender are both set, can resolve
// to a form other than the one the label was built from.
func (s *Store) FormIDForLabel(ctx context.Context, entityID int64, label string) (formID int64, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT FORM_ID FROM POKEMON_NAME_FORM
		WHERE (FORM_NAME = ? OR GENDER = ?) AND NDEX_NUMBER = ?
		ORDER BY rowid ASC
		LIMIT 1
	`, label, label, entityID).Scan(&formID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("form id for label: %w", err)
	}
	return formID, true, nil
}

// Aliases returns the alias texts stored under key in rowid order.
//
// Returns an empty slice (not nil) if the key has no aliases.
func (s *Store) Aliases(ctx context.Context, key catalog.Key) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT NAME_ALIAS FROM POKEMON_NAME_ALIAS
		WHERE NDEX_NUMBER = ? AND FORM_ID = ?
		ORDER BY rowid ASC
	`, key.EntityID, key.FormID)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	aliases := []string{}
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		if text.Valid {
			aliases = append(aliases, text.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aliases: %w", err)
	}
	return aliases, nil
}

// CountAliases returns the total number of alias rows across all keys.
func (s *Store) CountAliases(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM POKEMON_NAME_ALIAS`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count aliases: %w", err)
	}
	return n, nil
}
