package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name untouched", "Contact Card", "Contact Card"},
		{"path separators replaced", `Jo/Smith\Report`, "Jo_Smith_Report"},
		{"reserved characters replaced", `a:b*c?d"e<f>g|h`, "a_b_c_d_e_f_g_h"},
		{"control characters replaced", "line\nbreak", "line_break"},
		{"surrounding whitespace trimmed", "  Report  ", "Report"},
		{"trailing dots trimmed", "Report...", "Report"},
		{"empty falls back", "", "document"},
		{"only unsafe input falls back", " .. ", "document"},
		{"unicode kept", "Résumé 2026", "Résumé 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFileName(tt.input))
		})
	}
}
