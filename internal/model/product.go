package model

type ProductKind string

const (
	ProductTraining ProductKind = "training"
	ProductService  ProductKind = "service"
)

// Product is the public catalog view over published trainings and active services.
type Product struct {
	ID           string      `json:"id"`
	Kind         ProductKind `json:"kind"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description,omitempty"`
	Price        int64       `json:"price"`
	DisplayPrice string      `json:"display_price"`
	Duration     string      `json:"duration,omitempty"`
}
