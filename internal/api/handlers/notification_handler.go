// server/internal/api/handlers/notification_handler.go
package handlers

import (
	"context"
	"net/http"

	"greenscape-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationHandler struct {
	DB *mongo.Database
}

// GetNotifications lists notifications newest first, optionally filtered
// by customer, driver or unread status.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	filter := bson.M{}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}
	if driverID := c.Query("driverId"); driverID != "" {
		filter["driverId"] = driverID
	}
	if c.Query("unread") == "true" {
		filter["isRead"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("notifications").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query notifications"})
		return
	}
	defer cursor.Close(context.Background())

	var notifications []models.Notification
	if err := cursor.All(context.Background(), &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notifications"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkAsRead flips one notification to read.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	result, err := h.DB.Collection("notifications").UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllAsRead flips every unread notification matching the filter.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	filter := bson.M{"isRead": false}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}
	if driverID := c.Query("driverId"); driverID != "" {
		filter["driverId"] = driverID
	}

	result, err := h.DB.Collection("notifications").UpdateMany(context.Background(),
		filter,
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "updated": result.ModifiedCount})
}
