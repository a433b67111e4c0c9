package judge

// Language describes one judge language the contest exposes to students.
type Language struct {
	ID   int
	Name string
}

// DefaultReferenceLanguageID is used for reference solutions when the admin
// does not pick a language explicitly.
const DefaultReferenceLanguageID = 71 // Python 3

// SupportedLanguages is the fixed table of Judge0 language identifiers the
// platform accepts. It mirrors the list offered by the editor frontend.
var SupportedLanguages = []Language{
	{ID: 71, Name: "Python (3.8.1)"},
	{ID: 50, Name: "C (GCC 9.2.0)"},
	{ID: 54, Name: "C++ (GCC 9.2.0)"},
	{ID: 62, Name: "Java (OpenJDK 13)"},
	{ID: 63, Name: "JavaScript (Node.js)"},
}

// IsSupportedLanguage reports whether the given Judge0 language id is allowed.
func IsSupportedLanguage(id int) bool {
	for _, language := range SupportedLanguages {
		if language.ID == id {
			return true
		}
	}
	return false
}

// LanguageName returns the display name for a language id, or an empty string.
func LanguageName(id int) string {
	for _, language := range SupportedLanguages {
		if language.ID == id {
			return language.Name
		}
	}
	return ""
}
