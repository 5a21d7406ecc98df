package subjects

import "slices"

// Class filter tables for browsing views. Only classes 9-12 are browsable
// even though the upstream accepts 6-12 on upload.

var classLevels = []string{"9", "10", "11", "12"}

var byClass = map[string][]string{
	"9":  {"English", "Hindi", "Maths", "Science", "Social Science"},
	"10": {"English", "Hindi", "Maths", "Science", "Social Science"},
	"11": {"Physics", "Chemistry", "Biology", "Maths", "English", "Hindi"},
	"12": {"Physics", "Chemistry", "Biology", "Maths", "English", "Hindi"},
}

func Classes() []string {
	return slices.Clone(classLevels)
}

func ForClass(classLevel string) []string {
	return slices.Clone(byClass[classLevel])
}

func ValidClass(classLevel string) bool {
	_, ok := byClass[classLevel]
	return ok
}

// Allowed reports whether subject may stay selected under classLevel. An
// empty subject is always allowed; a subject without a class never is.
func Allowed(classLevel, subject string) bool {
	if subject == "" {
		return true
	}
	return slices.Contains(byClass[classLevel], subject)
}

// Normalize resets subject when the class changed underneath it, mirroring
// the filter behavior of the browsing pages: picking a new class clears a
// subject that the new class does not offer.
func Normalize(classLevel, subject string) (string, string) {
	if !ValidClass(classLevel) {
		return "", ""
	}
	if !Allowed(classLevel, subject) {
		return classLevel, ""
	}
	return classLevel, subject
}
