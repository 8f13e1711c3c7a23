package teacher

import "time"

type Teacher struct {
	ID        string
	FullName  string
	Phone     *string
	Subject   *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
