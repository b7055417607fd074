package rendering

import "strings"

// unsafe characters replaced when building artifact and download file names
const unsafeNameChars = `\/:*?"<>|`

// SanitizeFileName makes a name safe to use as a file name.
// Unsafe characters become underscores; an empty result falls back to
// "document".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeNameChars, r) || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")
	if name == "" {
		return "document"
	}
	return name
}
