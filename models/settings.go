package models

import (
	"regexp"
	"strings"
)

const (
	maxContactLines = 5
	maxTermsLength  = 15
)

// DefaultAccentColor is the accent used on invoices until the user picks one.
const DefaultAccentColor = "#000000"

var accentColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Settings holds the user-defined application settings that appear on every
// generated invoice and work summary.
type Settings struct {
	BusinessName        string   `json:"businessName"`
	BusinessContactInfo []string `json:"businessContactInfo"`
	InvoiceTerms        string   `json:"invoiceTerms"`
	AccentColor         string   `json:"accentColor"`
	Logo                string   `json:"logo"`
	DebugGrid           bool     `json:"debugGrid"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		BusinessContactInfo: []string{},
		AccentColor:         DefaultAccentColor,
	}
}

// Normalize applies the documented caps: the business name is trimmed,
// contact info keeps at most five non-empty lines, invoice terms are trimmed
// and truncated to fifteen characters, and an unparsable accent color falls
// back to the default.
func (s Settings) Normalize() Settings {
	s.BusinessName = strings.TrimSpace(s.BusinessName)

	kept := make([]string, 0, maxContactLines)
	for _, line := range s.BusinessContactInfo {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == maxContactLines {
			break
		}
	}
	s.BusinessContactInfo = kept

	s.InvoiceTerms = strings.TrimSpace(s.InvoiceTerms)
	if len(s.InvoiceTerms) > maxTermsLength {
		s.InvoiceTerms = s.InvoiceTerms[:maxTermsLength]
	}

	if !accentColorPattern.MatchString(s.AccentColor) {
		s.AccentColor = DefaultAccentColor
	}

	return s
}
