package models

// Table is a seating position on the café floor plan. X, Y, Shape and
// Rotation only matter to the admin layout view.
type Table struct {
	ID       int     `json:"id" db:"id"`
	Capacity int     `json:"capacity" db:"capacity"`
	X        float64 `json:"x" db:"pos_x"`
	Y        float64 `json:"y" db:"pos_y"`
	Shape    string  `json:"shape" db:"shape"`
	Rotation int     `json:"rotation" db:"rotation"`
}
