package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/aliasdex/internal/catalog"
)

// Selection is a resolved (entity, form) choice.
// Found is false when the entity name was unknown; Key is then meaningless.
type Selection struct {
	Entity catalog.Entity `json:"entity"`
	Label  string         `json:"label"`
	Key    catalog.Key    `json:"key"`
	Found  bool           `json:"found"`
}

// AliasResolver lists and mutates the aliases of a selection.
type AliasResolver struct {
	store  Store
	logger *slog.Logger
}

// NewAliasResolver creates an AliasResolver over st.
// A nil logger falls back to slog.Default().
func NewAliasResolver(st Store, logger *slog.Logger) *AliasResolver {
	return &AliasResolver{store: st, logger: loggerOrDefault(logger)}
}

// FormID maps a label back to a form identifier of the entity.
//
// The base label is form 0. Any other label is matched against FORM_NAME or
// GENDER; when nothing matches the result defaults to form 0. The match is
// not injective (see store.FormIDForLabel), so callers that still hold the
// Label from a FormSet should prefer SelectLabel, which keeps its FormID.
func (r *AliasResolver) FormID(ctx context.Context, entityID int64, label string) (int64, error) {
	if label == catalog.BaseLabel {
		return catalog.BaseFormID, nil
	}
	id, found, err := r.store.FormIDForLabel(ctx, entityID, label)
	if err != nil {
		return 0, fmt.Errorf("resolve form id: %w", err)
	}
	if !found {
		r.logger.Debug("no form matches label, using base form", "entity_id", entityID, "label", label)
		return catalog.BaseFormID, nil
	}
	return id, nil
}

// Select resolves an entity name and a label text into a Selection.
// An unknown entity yields Found=false and no error.
func (r *AliasResolver) Select(ctx context.Context, name, label string) (Selection, error) {
	entity, found, err := r.store.EntityByName(ctx, name)
	if err != nil {
		return Selection{}, fmt.Errorf("select: %w", err)
	}
	if !found {
		return Selection{Label: label}, nil
	}
	formID, err := r.FormID(ctx, entity.ID, label)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Entity: entity,
		Label:  label,
		Key:    catalog.Key{EntityID: entity.ID, FormID: formID},
		Found:  true,
	}, nil
}

// SelectLabel builds a Selection from a label taken out of fs, keeping the
// form identifier the label was derived from instead of re-deriving it from
// the text.
func SelectLabel(fs FormSet, label catalog.Label) Selection {
	if !fs.Found {
		return Selection{Label: label.Text}
	}
	return Selection{
		Entity: fs.Entity,
		Label:  label.Text,
		Key:    catalog.Key{EntityID: fs.Entity.ID, FormID: label.FormID},
		Found:  true,
	}
}

// SelectForm picks a form of the entity in fs by label text.
//
// An empty label means fs.Default. A label offered by fs keeps the form it
// came from; any other text falls back to the column match in Select and
// ends up on the base form when nothing matches.
func (r *AliasResolver) SelectForm(ctx context.Context, fs FormSet, label string) (Selection, error) {
	if !fs.Found {
		return Selection{Label: label}, nil
	}
	if label == "" {
		label = fs.Default
	}
	if l, ok := fs.Lookup(label); ok {
		return SelectLabel(fs, l), nil
	}
	r.logger.Warn("label is not offered for this entity, matching form columns",
		"entity_id", fs.Entity.ID, "label", label)
	return r.Select(ctx, fs.Entity.Name, label)
}

// List returns the aliases of sel in store order.
func (r *AliasResolver) List(ctx context.Context, sel Selection) ([]string, error) {
	if !sel.Found {
		return []string{}, nil
	}
	aliases, err := r.store.Aliases(ctx, sel.Key)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return aliases, nil
}

// Add appends text to the aliases of sel. Duplicates are allowed.
// Empty text is a silent no-op.
func (r *AliasResolver) Add(ctx context.Context, sel Selection, text string) error {
	if !sel.Found || text == "" {
		return nil
	}
	if err := r.store.InsertAlias(ctx, catalog.Alias{Key: sel.Key, Text: text}); err != nil {
		return fmt.Errorf("add alias: %w", err)
	}
	r.logger.Info("alias added", "entity_id", sel.Key.EntityID, "form_id", sel.Key.FormID, "alias", text)
	return nil
}

// Edit renames every alias of sel whose text is oldText.
// Returns the number of rows changed. Empty text on either side is a silent no-op.
func (r *AliasResolver) Edit(ctx context.Context, sel Selection, oldText, newText string) (int64, error) {
	if !sel.Found || oldText == "" || newText == "" {
		return 0, nil
	}
	n, err := r.store.UpdateAlias(ctx, sel.Key, oldText, newText)
	if err != nil {
		return 0, fmt.Errorf("edit alias: %w", err)
	}
	r.logger.Info("alias edited", "entity_id", sel.Key.EntityID, "form_id", sel.Key.FormID,
		"from", oldText, "to", newText, "rows", n)
	return n, nil
}

// Delete removes every alias of sel whose text is text.
// Returns the number of rows removed. Empty text is a silent no-op.
func (r *AliasResolver) Delete(ctx context.Context, sel Selection, text string) (int64, error) {
	if !sel.Found || text == "" {
		return 0, nil
	}
	n, err := r.store.DeleteAlias(ctx, sel.Key, text)
	if err != nil {
		return 0, fmt.Errorf("delete alias: %w", err)
	}
	r.logger.Info("alias deleted", "entity_id", sel.Key.EntityID, "form_id", sel.Key.FormID,
		"alias", text, "rows", n)
	return n, nil
}
