package entity

// Category representa una categoría del catálogo. El nombre es único.
type Category struct {
	ID   int64
	Name string
}
