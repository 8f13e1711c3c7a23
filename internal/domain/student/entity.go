package student

import "time"

type Student struct {
	ID         string
	FullName   string
	Grade      int
	School     *string
	ParentName *string
	Phone      *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
