package projects_services

import (
	"strings"
	"unicode"
)

const maxRepositoryNameLength = 100

// RepositoryNameForTitle turns a project title into a GitHub repository name:
// lowercase ASCII letters, digits, dots and underscores, with every other run
// of characters collapsed into a single dash.
func RepositoryNameForTitle(title string) string {
	var builder strings.Builder
	isPendingDash := false

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		isAllowed := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_')
		if !isAllowed {
			isPendingDash = builder.Len() > 0
			continue
		}

		if isPendingDash {
			builder.WriteByte('-')
			isPendingDash = false
		}
		builder.WriteRune(r)
	}

	name := builder.String()
	if len(name) > maxRepositoryNameLength {
		name = strings.TrimRight(name[:maxRepositoryNameLength], "-.")
	}

	name = strings.Trim(name, ".")
	if name == "" {
		return "project"
	}

	return name
}
