package entity

// Category names a product grouping. ProductID may be empty for an
// orphaned category row.
type Category struct {
	ID        string
	Name      string
	ProductID string
}
