// server/internal/api/handlers/rating_handler.go
package handlers

import (
	"context"
	"net/http"

	"greenscape-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingHandler struct {
	DB *mongo.Database
}

type RatePayload struct {
	Rating int `json:"rating" binding:"required"`
}

// RateUser folds one vote into the target user's running mean. There is
// no per-rater deduplication; the same rater may vote repeatedly.
func (h *RatingHandler) RateUser(c *gin.Context) {
	serviceNum := c.Param("userId")

	var payload RatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	ctx := context.Background()
	var user models.User
	err := h.DB.Collection("users").FindOne(ctx, bson.M{"serviceNum": serviceNum}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	newMean, newCount := models.FoldRating(user.Rating, user.RatingCount, payload.Rating)

	// Guard on the previous count so two concurrent votes both land
	// instead of one overwriting the other.
	result, err := h.DB.Collection("users").UpdateOne(ctx,
		bson.M{"serviceNum": serviceNum, "ratingCount": user.RatingCount},
		bson.M{"$set": bson.M{"rating": newMean, "ratingCount": newCount}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rating"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Rating changed concurrently, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": newMean, "ratingCount": newCount})
}

type LandscaperGrade struct {
	ServiceNum  string  `json:"serviceNum"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	Grade       string  `json:"grade"`
}

// GetLandscaperGrades ranks landscapers by (rating desc, ratingCount
// desc) and assigns letter grades by rank cutoffs.
func (h *RatingHandler) GetLandscaperGrades(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{
		{Key: "rating", Value: -1},
		{Key: "ratingCount", Value: -1},
	})
	cursor, err := h.DB.Collection("users").Find(context.Background(), bson.M{"role": models.RoleLandscaper}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query landscapers"})
		return
	}
	defer cursor.Close(context.Background())

	var landscapers []models.User
	if err := cursor.All(context.Background(), &landscapers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode landscapers"})
		return
	}

	grades := make([]LandscaperGrade, 0, len(landscapers))
	for rank, u := range landscapers {
		grades = append(grades, LandscaperGrade{
			ServiceNum:  u.ServiceNum,
			Name:        u.Name,
			Rating:      u.Rating,
			RatingCount: u.RatingCount,
			Grade:       models.GradeForRank(rank),
		})
	}
	c.JSON(http.StatusOK, grades)
}
