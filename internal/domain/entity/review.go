package entity

import "time"

// Review links a user and a tour; at most one review per (user, tour) pair,
// enforced by a unique index. UserName/UserPhoto are populated from the
// reviewer on read paths.
type Review struct {
	ID        string    `db:"id" json:"id"`
	Review    string    `db:"review" json:"review"`
	Rating    int       `db:"rating" json:"rating"`
	TourID    string    `db:"tour_id" json:"tour"`
	UserID    string    `db:"user_id" json:"user"`
	UserName  *string   `db:"user_name" json:"userName,omitempty"`
	UserPhoto *string   `db:"user_photo" json:"userPhoto,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RatingStats is the recomputed aggregate over a tour's review set.
type RatingStats struct {
	Count   int
	Average float64
}
