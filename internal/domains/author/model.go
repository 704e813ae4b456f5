package author

// Author is a book author. Books reference it by ID.
type Author struct {
	ID        int     `json:"id" db:"id"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Bio       *string `json:"bio" db:"bio"`
}

// FullName is the display name used wherever an author is shown next to a book.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
