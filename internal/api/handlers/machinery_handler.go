// server/internal/api/handlers/machinery_handler.go
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

type MachineryHandler struct {
	DB *mongo.Database
}

type MachineryPayload struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	RatePerDay  float64 `json:"ratePerDay"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

func (h *MachineryHandler) CreateMachinery(c *gin.Context) {
	var payload MachineryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.RatePerDay < 0 || payload.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate and quantity must not be negative"})
		return
	}

	newMachine := models.Machinery{
		MachineID:   fmt.Sprintf("MCH-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:        payload.Name,
		Category:    payload.Category,
		RatePerDay:  payload.RatePerDay,
		Quantity:    payload.Quantity,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := h.DB.Collection("machinery").InsertOne(context.Background(), newMachine)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create machinery"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"machineID": newMachine.MachineID, "id": result.InsertedID})
}

func (h *MachineryHandler) GetAllMachinery(c *gin.Context) {
	cursor, err := h.DB.Collection("machinery").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query machinery"})
		return
	}
	defer cursor.Close(context.Background())

	var machines []models.Machinery
	if err := cursor.All(context.Background(), &machines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode machinery"})
		return
	}
	if machines == nil {
		machines = []models.Machinery{}
	}
	c.JSON(http.StatusOK, machines)
}

func (h *MachineryHandler) GetMachineryByID(c *gin.Context) {
	machineID := c.Param("id")
	var machine models.Machinery
	err := h.DB.Collection("machinery").FindOne(context.Background(), bson.M{"machineID": machineID}).Decode(&machine)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machinery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machinery"})
		return
	}
	c.JSON(http.StatusOK, machine)
}

func (h *MachineryHandler) UpdateMachinery(c *gin.Context) {
	machineID := c.Param("id")

	var payload MachineryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.RatePerDay < 0 || payload.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate and quantity must not be negative"})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        payload.Name,
		"category":    payload.Category,
		"ratePerDay":  payload.RatePerDay,
		"quantity":    payload.Quantity,
		"description": payload.Description,
		"imageUrl":    payload.ImageURL,
		"updatedAt":   time.Now(),
	}}

	result, err := h.DB.Collection("machinery").UpdateOne(context.Background(), bson.M{"machineID": machineID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update machinery"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machinery not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *MachineryHandler) DeleteMachinery(c *gin.Context) {
	machineID := c.Param("id")
	result, err := h.DB.Collection("machinery").DeleteOne(context.Background(), bson.M{"machineID": machineID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete machinery"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machinery not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
