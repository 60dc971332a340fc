package category

import domain "course-service/internal/domain/category"

// Category is the category DTO returned to transports.
type Category struct {
	ID   int64
	Name string
}

func toDTO(c *domain.Category) *Category {
	return &Category{ID: c.ID, Name: c.Name}
}
