package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/aliasdex/internal/catalog"
)

// FormSet is the deduplicated list of form labels for one entity.
//
// Labels keep first-seen order over the entity's form rows (rowid order),
// with a synthesized base label appended when no row has FormID 0.
// Default is the first label, or "" when the set is empty.
type FormSet struct {
	Entity  catalog.Entity  `json:"entity"`
	Found   bool            `json:"found"`
	Labels  []catalog.Label `json:"labels"`
	Default string          `json:"default"`
}

// Texts returns the label texts in order.
func (fs FormSet) Texts() []string {
	out := make([]string, len(fs.Labels))
	for i, l := range fs.Labels {
		out[i] = l.Text
	}
	return out
}

// Lookup returns the label with the given text.
func (fs FormSet) Lookup(text string) (catalog.Label, bool) {
	for _, l := range fs.Labels {
		if l.Text == text {
			return l, true
		}
	}
	return catalog.Label{}, false
}

// FormResolver computes the selectable form labels of an entity.
type FormResolver struct {
	store  Store
	logger *slog.Logger
}

// NewFormResolver creates a FormResolver over st.
// A nil logger falls back to slog.Default().
func NewFormResolver(st Store, logger *slog.Logger) *FormResolver {
	return &FormResolver{store: st, logger: loggerOrDefault(logger)}
}

// Resolve looks up the entity by display name and builds its FormSet.
// An unknown name yields an empty FormSet with Found=false and no error.
func (r *FormResolver) Resolve(ctx context.Context, name string) (FormSet, error) {
	entity, found, err := r.store.EntityByName(ctx, name)
	if err != nil {
		return FormSet{}, fmt.Errorf("resolve forms: %w", err)
	}
	if !found {
		r.logger.Debug("entity not found", "name", name)
		return FormSet{Labels: []catalog.Label{}}, nil
	}
	return r.ResolveEntity(ctx, entity)
}

// ResolveEntity builds the FormSet of a known entity.
func (r *FormResolver) ResolveEntity(ctx context.Context, entity catalog.Entity) (FormSet, error) {
	forms, err := r.store.Forms(ctx, entity.ID)
	if err != nil {
		return FormSet{}, fmt.Errorf("resolve forms: %w", err)
	}

	labels := BuildLabels(forms)
	fs := FormSet{Entity: entity, Found: true, Labels: labels}
	if len(labels) > 0 {
		fs.Default = labels[0].Text
	}
	for _, l := range labels {
		if l.Ambiguous {
			r.logger.Warn("form label maps to more than one form",
				"entity_id", entity.ID, "label", l.Text, "first_form_id", l.FormID)
		}
	}
	return fs, nil
}

// BuildLabels derives the label list from form rows.
//
// A FormID 0 row contributes the base label when both name and gender are
// NULL, otherwise its name, otherwise its gender. Any other row contributes
// its name and, separately, its gender. If no row has FormID 0 the base label
// is appended. Duplicate texts collapse onto the first occurrence.
func BuildLabels(forms []catalog.Form) []catalog.Label {
	labels := []catalog.Label{}
	index := map[string]int{}

	add := func(text string, formID int64, kind catalog.LabelKind) {
		if i, ok := index[text]; ok {
			if labels[i].FormID != formID {
				labels[i].Ambiguous = true
			}
			return
		}
		index[text] = len(labels)
		labels = append(labels, catalog.Label{Text: text, FormID: formID, Kind: kind})
	}

	hasBase := false
	for _, f := range forms {
		if f.FormID == catalog.BaseFormID {
			hasBase = true
			switch {
			case f.Name == nil && f.Gender == nil:
				add(catalog.BaseLabel, f.FormID, catalog.LabelBase)
			case f.Name != nil:
				add(*f.Name, f.FormID, catalog.LabelName)
			default:
				add(*f.Gender, f.FormID, catalog.LabelGender)
			}
			continue
		}
		if f.Name != nil {
			add(*f.Name, f.FormID, catalog.LabelName)
		}
		if f.Gender != nil {
			add(*f.Gender, f.FormID, catalog.LabelGender)
		}
	}

	if !hasBase {
		add(catalog.BaseLabel, catalog.BaseFormID, catalog.LabelBase)
	}
	return labels
}
