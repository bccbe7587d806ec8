// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a login account. Rating fields default to zero and are only
// mutated through the rating endpoints.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceNum  string             `bson:"serviceNum" json:"serviceNum"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"` // admin, customer, driver, landscaper, management
	Rating      float64            `bson:"rating" json:"rating"`
	RatingCount int                `bson:"ratingCount" json:"ratingCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// FoldRating returns the new running mean and count after one more vote.
func FoldRating(mean float64, count int, vote int) (float64, int) {
	newCount := count + 1
	newMean := (mean*float64(count) + float64(vote)) / float64(newCount)
	return newMean, newCount
}

// GradeForRank maps a landscaper's position in the (rating desc,
// ratingCount desc) ordering to a letter grade. Rank is zero-based.
func GradeForRank(rank int) string {
	switch {
	case rank < 3:
		return "A"
	case rank < 6:
		return "B"
	case rank < 9:
		return "C"
	default:
		return "D"
	}
}
