package models

// MovementType tells whether stock came in or went out.
type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "saida"
)

// Movement is a single stock change of a product.
// The shape is kept for stored data compatibility; no operation records movements.
type Movement struct {
	ID             string       `json:"id"`
	Date           string       `json:"date"`
	Type           MovementType `json:"type"`
	QuantityChange int          `json:"quantityChange"`
	Reason         *string      `json:"reason,omitempty"`
}
