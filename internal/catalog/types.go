package catalog

// BaseLabel is the fixed display label of the base form.
const BaseLabel = "基本"

// BaseFormID identifies the base form of every entity.
const BaseFormID int64 = 0

// Entity is a named species record.
type Entity struct {
	Name string `json:"name" yaml:"name"`
	ID   int64  `json:"entity_id" yaml:"entity_id"`
}

// Form is a variant of an entity. Name and Gender are nil when the column is NULL.
type Form struct {
	EntityID int64   `json:"entity_id" yaml:"entity_id"`
	FormID   int64   `json:"form_id" yaml:"form_id"`
	Name     *string `json:"form_name,omitempty" yaml:"form_name"`
	Gender   *string `json:"gender,omitempty" yaml:"gender"`
}

// IsCanonicalBase reports whether f is the unnamed, ungendered base form.
func (f Form) IsCanonicalBase() bool {
	return f.FormID == BaseFormID && f.Name == nil && f.Gender == nil
}

// Key addresses the alias list of one (entity, form) pair.
type Key struct {
	EntityID int64 `json:"entity_id" yaml:"entity_id"`
	FormID   int64 `json:"form_id" yaml:"form_id"`
}

// Alias is a user-supplied alternate name for one (entity, form) pair.
type Alias struct {
	Key  `yaml:",inline"`
	Text string `json:"alias" yaml:"alias"`
}

// LabelKind records which column produced a form label.
type LabelKind string

const (
	LabelBase   LabelKind = "base"
	LabelName   LabelKind = "form_name"
	LabelGender LabelKind = "gender"
)

// Label is one selectable form choice for an entity.
//
// FormID is the form the label was first seen on. Ambiguous is set when the
// same text was also produced by a different form, in which case FormID alone
// does not identify what the user meant.
type Label struct {
	Text      string    `json:"text"`
	FormID    int64     `json:"form_id"`
	Kind      LabelKind `json:"kind"`
	Ambiguous bool      `json:"ambiguous,omitempty"`
}

// StringPtr returns a pointer to s. Used for building Form literals.
func StringPtr(s string) *string {
	return &s
}
