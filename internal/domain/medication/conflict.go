package medication

import (
	"fmt"
	"sort"
)

// ConflictType distinguishes duplicate-class conflicts from the fixed
// cross-class exclusions.
type ConflictType string

const (
	ConflictSameClass  ConflictType = "same-class"
	ConflictCrossClass ConflictType = "cross-class"
)

// ConflictRecord is one detected medication conflict. Records are derived
// data: they are recomputed in full on every medication-list change and never
// stored, apart from the banner dismissal timestamp the alert ledger keeps.
type ConflictRecord struct {
	Type        ConflictType          `json:"type"`
	Categories  []TherapeuticCategory `json:"categories"`
	Medications []string              `json:"medications"`
	Rationale   string                `json:"rationale"`
}

// exclusiveRAAS is the fixed mutually-exclusive set: any two distinct
// categories from it present at once is a cross-class conflict.
var exclusiveRAAS = []TherapeuticCategory{
	CategoryACEInhibitor,
	CategoryARB,
	CategoryARNI,
}

// FindAllConflicts recomputes every conflict in the active medication list.
// Inactive and uncategorized medications are filtered out first. The engine
// holds no state and is idempotent: the same list always yields the same
// records, member names sorted, groups in fixed category order, regardless
// of input order. A medication may appear in several records, one per rule
// it participates in; each carries distinct rationale the patient should see.
func FindAllConflicts(meds []Medication) []ConflictRecord {
	groups := groupActiveByCategory(meds)

	var out []ConflictRecord
	for _, cat := range Categories() {
		members := groups[cat]
		if len(members) < 2 {
			continue
		}
		out = append(out, ConflictRecord{
			Type:        ConflictSameClass,
			Categories:  []TherapeuticCategory{cat},
			Medications: members,
			Rationale: fmt.Sprintf(
				"%s are all in the same class (%s). Taking more than one is usually unintentional and worth discussing with your care team.",
				joinNames(members), cat),
		})
	}

	for i := 0; i < len(exclusiveRAAS); i++ {
		for j := i + 1; j < len(exclusiveRAAS); j++ {
			a, b := groups[exclusiveRAAS[i]], groups[exclusiveRAAS[j]]
			if len(a) == 0 || len(b) == 0 {
				continue
			}
			members := append(append([]string{}, a...), b...)
			sort.Strings(members)
			out = append(out, ConflictRecord{
				Type:        ConflictCrossClass,
				Categories:  []TherapeuticCategory{exclusiveRAAS[i], exclusiveRAAS[j]},
				Medications: members,
				Rationale: fmt.Sprintf(
					"%s combine a %s with a %s. These classes are not usually taken together; please discuss this combination with your care team.",
					joinNames(members), exclusiveRAAS[i], exclusiveRAAS[j]),
			})
		}
	}

	return out
}

// CheckConflicts reports the conflicts that adding a medication of the given
// category would introduce against the existing list, without the candidate
// needing to be saved first. It backs the "add anyway?" confirmation at add
// time. Records cite the existing medications involved.
func CheckConflicts(candidate TherapeuticCategory, existing []Medication) []ConflictRecord {
	if !candidate.Valid() {
		return nil
	}
	groups := groupActiveByCategory(existing)

	var out []ConflictRecord
	if members := groups[candidate]; len(members) > 0 {
		out = append(out, ConflictRecord{
			Type:        ConflictSameClass,
			Categories:  []TherapeuticCategory{candidate},
			Medications: members,
			Rationale: fmt.Sprintf(
				"You already take %s in the %s class. Adding another is usually unintentional and worth discussing with your care team.",
				joinNames(members), candidate),
		})
	}

	if inExclusiveSet(candidate) {
		for _, other := range exclusiveRAAS {
			if other == candidate {
				continue
			}
			members := groups[other]
			if len(members) == 0 {
				continue
			}
			out = append(out, ConflictRecord{
				Type:        ConflictCrossClass,
				Categories:  []TherapeuticCategory{candidate, other},
				Medications: members,
				Rationale: fmt.Sprintf(
					"A %s is not usually combined with %s (%s). Please discuss this combination with your care team.",
					candidate, joinNames(members), other),
			})
		}
	}

	return out
}

// groupActiveByCategory buckets active categorized medication names by
// category, sorted within each bucket.
func groupActiveByCategory(meds []Medication) map[TherapeuticCategory][]string {
	groups := make(map[TherapeuticCategory][]string)
	for _, m := range meds {
		if !m.Active || !m.Categorized() {
			continue
		}
		groups[*m.Category] = append(groups[*m.Category], m.Name)
	}
	for cat := range groups {
		sort.Strings(groups[cat])
	}
	return groups
}

func inExclusiveSet(c TherapeuticCategory) bool {
	for _, e := range exclusiveRAAS {
		if e == c {
			return true
		}
	}
	return false
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		out := ""
		for _, n := range names[:len(names)-1] {
			out += n + ", "
		}
		return out + "and " + names[len(names)-1]
	}
}
