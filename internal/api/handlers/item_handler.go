// server/internal/api/handlers/item_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greenscape-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ItemHandler struct {
	DB *mongo.Database
}

type ItemPayload struct {
	ItemName    string  `json:"itemname" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

// CreateItem adds a new inventory item. Negative price or quantity is
// rejected outright.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var payload ItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Price < 0 || payload.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and quantity must not be negative"})
		return
	}

	newItem := models.Item{
		ItemID:      fmt.Sprintf("ITM-%s", strings.ToUpper(uuid.New().String()[:8])),
		ItemName:    payload.ItemName,
		Category:    payload.Category,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := h.DB.Collection("items").InsertOne(context.Background(), newItem)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"itemID": newItem.ItemID, "id": result.InsertedID})
}

// GetAllItems lists items, optionally filtered by category.
func (h *ItemHandler) GetAllItems(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	cursor, err := h.DB.Collection("items").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query items"})
		return
	}
	defer cursor.Close(context.Background())

	var items []models.Item
	if err := cursor.All(context.Background(), &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode items"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItemByID(c *gin.Context) {
	itemID := c.Param("id")
	var item models.Item
	err := h.DB.Collection("items").FindOne(context.Background(), bson.M{"itemID": itemID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces an item's editable fields. Quantity is managed by
// the order lifecycle, so this endpoint also guards against negatives on
// manual corrections.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var payload ItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Price < 0 || payload.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and quantity must not be negative"})
		return
	}

	update := bson.M{"$set": bson.M{
		"itemname":    payload.ItemName,
		"category":    payload.Category,
		"price":       payload.Price,
		"quantity":    payload.Quantity,
		"description": payload.Description,
		"imageUrl":    payload.ImageURL,
		"updatedAt":   time.Now(),
	}}

	result, err := h.DB.Collection("items").UpdateOne(context.Background(), bson.M{"itemID": itemID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")
	result, err := h.DB.Collection("items").DeleteOne(context.Background(), bson.M{"itemID": itemID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
