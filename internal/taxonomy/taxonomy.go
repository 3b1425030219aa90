// Package taxonomy maps note sections to their place in the fixed medical category tree.
//
// The tree has two levels: a category group (for example "specialists") and a leaf
// section (for example "cardiologist"). Every leaf belongs to exactly one group and the
// table below is the only source of that mapping. Resolution never touches remote state.
package taxonomy

import (
	"sort"
	"strings"

	"medstory-be/internal/pkg/apperror"
)

const (
	GroupAnalyzes         = "analyzes"
	GroupDentistry        = "dentistry"
	GroupSpecialists      = "specialists"
	GroupBodyExaminations = "body examinations"
	GroupProcedures       = "procedures"
	GroupVaccinations     = "vaccinations"
)

// leafGroups is the exhaustive leaf -> group table. "procedures" and "vaccinations"
// are ordinary rows whose leaf equals the group.
var leafGroups = map[string]string{
	"stool":                GroupAnalyzes,
	"blood":                GroupAnalyzes,
	"urine":                GroupAnalyzes,
	"mensAnalyzes":         GroupAnalyzes,
	"gynecologistAnalyzes": GroupAnalyzes,
	"other analyzes":       GroupAnalyzes,

	"DTherapist":   GroupDentistry,
	"DSurgeon":     GroupDentistry,
	"DOrthopedist": GroupDentistry,
	"orthodontist": GroupDentistry,
	"DXRay":        GroupDentistry,
	"other dental": GroupDentistry,

	"allergist":          GroupSpecialists,
	"gastroenterologist": GroupSpecialists,
	"hematologist":       GroupSpecialists,
	"hepatologist":       GroupSpecialists,
	"gynecologist":       GroupSpecialists,
	"dermatologist":      GroupSpecialists,
	"immunologist":       GroupSpecialists,
	"cardiologist":       GroupSpecialists,
	"cosmetologist":      GroupSpecialists,
	"mammologist":        GroupSpecialists,
	"neurologist":        GroupSpecialists,
	"nephrologist":       GroupSpecialists,
	"otolaryngologist":   GroupSpecialists,
	"ophthalmologist":    GroupSpecialists,
	"proctologist":       GroupSpecialists,
	"psychotherapist":    GroupSpecialists,
	"pulmanologist":      GroupSpecialists,
	"rheumatologist":     GroupSpecialists,
	"therapist":          GroupSpecialists,
	"traumatologist":     GroupSpecialists,
	"urologist":          GroupSpecialists,
	"phlebologist":       GroupSpecialists,
	"surgeon":            GroupSpecialists,
	"endocrinologist":    GroupSpecialists,
	"other specialists":  GroupSpecialists,

	"bia":                    GroupBodyExaminations,
	"helicobacterBreathTest": GroupBodyExaminations,
	"capsuleEndoscopy":       GroupBodyExaminations,
	"cardiogram":             GroupBodyExaminations,
	"colonoscopy":            GroupBodyExaminations,
	"ct":                     GroupBodyExaminations,
	"mri":                    GroupBodyExaminations,
	"mammography":            GroupBodyExaminations,
	"xRay":                   GroupBodyExaminations,
	"spirometry":             GroupBodyExaminations,
	"ultrasound":             GroupBodyExaminations,
	"tee":                    GroupBodyExaminations,
	"holter":                 GroupBodyExaminations,
	"abpm":                   GroupBodyExaminations,
	"egd":                    GroupBodyExaminations,
	"other examination":      GroupBodyExaminations,

	"procedures":   GroupProcedures,
	"vaccinations": GroupVaccinations,
}

// Path is the resolved storage location of a section.
type Path struct {
	Group string
	Leaf  string
}

// String renders the user-relative path: user/sections/{group}/subsections/{leaf}.
func (p Path) String() string {
	return strings.Join(append([]string{"user"}, p.relative()...), "/")
}

// Segments returns the absolute path segments of the section document for uid.
func (p Path) Segments(uid string) []string {
	return append([]string{"users", uid}, p.relative()...)
}

// Section returns the absolute section document path for uid.
func (p Path) Section(uid string) string {
	return strings.Join(p.Segments(uid), "/")
}

// Collection returns the absolute path of the notes collection for uid.
func (p Path) Collection(uid string) string {
	return p.Section(uid) + "/notes"
}

// Document returns the absolute path of the note document keyed by fullDate.
func (p Path) Document(uid, fullDate string) string {
	return p.Collection(uid) + "/" + fullDate
}

func (p Path) relative() []string {
	return []string{"sections", p.Group, "subsections", p.Leaf}
}

// Resolve maps a leaf section to its path. Unknown sections yield a *apperror.ResolutionError.
func Resolve(section string) (Path, error) {
	group, ok := leafGroups[section]
	if !ok {
		return Path{}, &apperror.ResolutionError{Section: section}
	}
	return Path{Group: group, Leaf: section}, nil
}

// IsLeaf reports whether section is a known leaf.
func IsLeaf(section string) bool {
	_, ok := leafGroups[section]
	return ok
}

// Leaves returns the leaves of group, sorted. An unknown group returns nil.
func Leaves(group string) []string {
	var out []string
	for leaf, g := range leafGroups {
		if g == group {
			out = append(out, leaf)
		}
	}
	sort.Strings(out)
	return out
}

// Groups returns every category group, sorted.
func Groups() []string {
	seen := make(map[string]struct{})
	for _, g := range leafGroups {
		seen[g] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the leaf -> group table.
func Table() map[string]string {
	out := make(map[string]string, len(leafGroups))
	for leaf, g := range leafGroups {
		out[leaf] = g
	}
	return out
}
