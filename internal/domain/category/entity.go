package category

// Category groups products under a display name.
type Category struct {
	ID   int64
	Name string
}
