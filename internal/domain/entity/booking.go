package entity

import "time"

// Booking records a paid (or comped) seat on a tour. TourName is populated
// from the tour on read paths.
type Booking struct {
	ID        string    `db:"id" json:"id"`
	TourID    string    `db:"tour_id" json:"tour"`
	UserID    string    `db:"user_id" json:"user"`
	Price     float64   `db:"price" json:"price"`
	Paid      bool      `db:"paid" json:"paid"`
	TourName  *string   `db:"tour_name" json:"tourName,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
