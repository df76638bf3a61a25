package models

import "time"

// Person is a roster entry. People are created once via the add-person
// action and never removed; the badge color is assigned from ColorPalette
// at creation time.
type Person struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ColorPalette is the fixed set of badge colors. AddPerson prefers an
// unused entry and cycles by index modulo the palette size once all ten
// are taken.
var ColorPalette = []string{
	"#EF4444",
	"#F97316",
	"#F59E0B",
	"#10B981",
	"#14B8A6",
	"#3B82F6",
	"#6366F1",
	"#8B5CF6",
	"#EC4899",
	"#F472B6",
}
