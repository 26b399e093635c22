package medication

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TherapeuticCategory classifies a medication for conflict checking.
// Custom entries carry no category and are invisible to the conflict engine.
type TherapeuticCategory string

const (
	CategoryBetaBlocker    TherapeuticCategory = "beta-blocker"
	CategoryACEInhibitor   TherapeuticCategory = "ace-inhibitor"
	CategoryARB            TherapeuticCategory = "arb"
	CategoryARNI           TherapeuticCategory = "arni"
	CategoryMRA            TherapeuticCategory = "mra"
	CategorySGLT2Inhibitor TherapeuticCategory = "sglt2-inhibitor"
)

// Categories returns all known categories in a fixed order.
func Categories() []TherapeuticCategory {
	return []TherapeuticCategory{
		CategoryBetaBlocker,
		CategoryACEInhibitor,
		CategoryARB,
		CategoryARNI,
		CategoryMRA,
		CategorySGLT2Inhibitor,
	}
}

// Valid reports whether c is a known therapeutic category.
func (c TherapeuticCategory) Valid() bool {
	switch c {
	case CategoryBetaBlocker, CategoryACEInhibitor, CategoryARB,
		CategoryARNI, CategoryMRA, CategorySGLT2Inhibitor:
		return true
	}
	return false
}

// Medication maps to the medication table. Deleting is always a soft
// deactivation: dose history may still reference the row.
type Medication struct {
	ID            uuid.UUID            `db:"id" json:"id"`
	Name          string               `db:"name" json:"name"`
	Category      *TherapeuticCategory `db:"category" json:"category,omitempty"`
	Diuretic      bool                 `db:"diuretic" json:"diuretic"`
	Active        bool                 `db:"active" json:"active"`
	DeactivatedAt *time.Time           `db:"deactivated_at" json:"deactivated_at,omitempty"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at" json:"updated_at"`
}

// Categorized reports whether the medication carries a known category.
func (m Medication) Categorized() bool {
	return m.Category != nil && m.Category.Valid()
}

// Preset is a row of the built-in name-to-category table applied when the
// patient adds a medication without picking a category themselves.
type Preset struct {
	Category *TherapeuticCategory
	Diuretic bool
}

func catPtr(c TherapeuticCategory) *TherapeuticCategory { return &c }

var presets = map[string]Preset{
	"lisinopril":           {Category: catPtr(CategoryACEInhibitor)},
	"enalapril":            {Category: catPtr(CategoryACEInhibitor)},
	"ramipril":             {Category: catPtr(CategoryACEInhibitor)},
	"losartan":             {Category: catPtr(CategoryARB)},
	"valsartan":            {Category: catPtr(CategoryARB)},
	"candesartan":          {Category: catPtr(CategoryARB)},
	"sacubitril/valsartan": {Category: catPtr(CategoryARNI)},
	"entresto":             {Category: catPtr(CategoryARNI)},
	"metoprolol":           {Category: catPtr(CategoryBetaBlocker)},
	"carvedilol":           {Category: catPtr(CategoryBetaBlocker)},
	"bisoprolol":           {Category: catPtr(CategoryBetaBlocker)},
	"spironolactone":       {Category: catPtr(CategoryMRA)},
	"eplerenone":           {Category: catPtr(CategoryMRA)},
	"dapagliflozin":        {Category: catPtr(CategorySGLT2Inhibitor)},
	"empagliflozin":        {Category: catPtr(CategorySGLT2Inhibitor)},
	"furosemide":           {Diuretic: true},
	"bumetanide":           {Diuretic: true},
	"torsemide":            {Diuretic: true},
	"hydrochlorothiazide":  {Diuretic: true},
}

// LookupPreset finds the preset for a medication name, ignoring case and
// surrounding whitespace. Unknown names stay uncategorized.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}
