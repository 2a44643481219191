package entity

import "time"

// Tour difficulties.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// DefaultRatingsAverage is what a tour's rating resets to when its last
// review is removed.
const DefaultRatingsAverage = 4.5

// Tour is a bookable product. RatingsQuantity and RatingsAverage are not
// authoritative: they are a materialized view over the tour's review set,
// owned by the rating sync, and must always equal its recomputation.
type Tour struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Slug            string      `db:"slug" json:"slug"`
	Duration        int         `db:"duration" json:"duration"`
	MaxGroupSize    int         `db:"max_group_size" json:"maxGroupSize"`
	Difficulty      string      `db:"difficulty" json:"difficulty"`
	Price           float64     `db:"price" json:"price"`
	PriceDiscount   *float64    `db:"price_discount" json:"priceDiscount,omitempty"`
	Summary         string      `db:"summary" json:"summary"`
	Description     string      `db:"description" json:"description,omitempty"`
	ImageCover      string      `db:"image_cover" json:"imageCover"`
	Images          []string    `db:"images" json:"images"`
	StartDates      []time.Time `db:"start_dates" json:"startDates"`
	Secret          bool        `db:"secret" json:"-"`
	RatingsQuantity int         `db:"ratings_quantity" json:"ratingsQuantity"`
	RatingsAverage  float64     `db:"ratings_average" json:"ratingsAverage"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`
}

// TourStats is the per-difficulty aggregate exposed by the stats endpoint.
type TourStats struct {
	Difficulty string  `db:"difficulty" json:"difficulty"`
	NumTours   int     `db:"num_tours" json:"numTours"`
	NumRatings int     `db:"num_ratings" json:"numRatings"`
	AvgRating  float64 `db:"avg_rating" json:"avgRating"`
	AvgPrice   float64 `db:"avg_price" json:"avgPrice"`
	MinPrice   float64 `db:"min_price" json:"minPrice"`
	MaxPrice   float64 `db:"max_price" json:"maxPrice"`
}

// MonthlyPlan counts tour starts per month of a year.
type MonthlyPlan struct {
	Month         int      `db:"month" json:"month"`
	NumTourStarts int      `db:"num_tour_starts" json:"numTourStarts"`
	Tours         []string `db:"tours" json:"tours"`
}
