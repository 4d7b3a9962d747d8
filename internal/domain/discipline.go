package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Discipline-specific validation errors
var (
	// ErrDisciplineIDEmpty is returned when a discipline ID is empty or nil.
	ErrDisciplineIDEmpty = errors.New("discipline ID cannot be empty")

	// ErrDisciplineNameEmpty is returned when a discipline's name is empty.
	ErrDisciplineNameEmpty = errors.New("discipline name cannot be empty")
)

// UnknownDisciplineName is the sentinel display name used when a review or
// study record references a discipline that no longer exists. Historical
// records must keep rendering after a discipline is deleted.
const UnknownDisciplineName = "Unknown"

// Discipline is a subject tag for study content. Study records and reviews
// reference disciplines by ID only; name and color are resolved live at
// display time so a rename never leaves stale copies behind.
type Discipline struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// Validate checks if the Discipline has valid data.
func (d *Discipline) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDisciplineIDEmpty
	}

	if d.Name == "" {
		return ErrDisciplineNameEmpty
	}

	return nil
}

// UnknownDiscipline returns the fallback discipline used when a referenced
// discipline cannot be found. The ID is preserved so the caller can still
// correlate the record.
func UnknownDiscipline(id uuid.UUID) *Discipline {
	return &Discipline{
		ID:    id,
		Name:  UnknownDisciplineName,
		Color: "gray",
	}
}

// Theme is the set of display attributes derived from a discipline color.
type Theme struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// themes maps the known discipline colors to their display themes.
var themes = map[string]Theme{
	"purple": {Background: "bg-purple-100", Border: "border-purple-500", Text: "text-purple-900"},
	"blue":   {Background: "bg-blue-100", Border: "border-blue-500", Text: "text-blue-900"},
	"navy":   {Background: "bg-indigo-100", Border: "border-indigo-500", Text: "text-indigo-900"},
	"green":  {Background: "bg-green-100", Border: "border-green-500", Text: "text-green-900"},
	"red":    {Background: "bg-red-100", Border: "border-red-500", Text: "text-red-900"},
	"orange": {Background: "bg-orange-100", Border: "border-orange-500", Text: "text-orange-900"},
}

// defaultTheme is used for any color not present in the themes map.
var defaultTheme = Theme{Background: "bg-gray-100", Border: "border-gray-500", Text: "text-gray-900"}

// ThemeForColor maps a discipline color to its display theme. It is total:
// unknown colors get the default theme instead of a missing-key panic.
func ThemeForColor(color string) Theme {
	if theme, ok := themes[color]; ok {
		return theme
	}
	return defaultTheme
}
