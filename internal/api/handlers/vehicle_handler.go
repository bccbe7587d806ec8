// server/internal/api/handlers/vehicle_handler.go
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

type VehicleHandler struct {
	DB *mongo.Database
}

type CreateVehiclePayload struct {
	VehicleNo string  `json:"vehicleNo" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Capacity  float64 `json:"capacity"`
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var payload CreateVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must not be negative"})
		return
	}

	newVehicle := models.Vehicle{
		VehicleID: fmt.Sprintf("VEH-%s", strings.ToUpper(uuid.New().String()[:8])),
		VehicleNo: payload.VehicleNo,
		Type:      payload.Type,
		Capacity:  payload.Capacity,
		Status:    models.VehicleAvailable,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := h.DB.Collection("vehicles").InsertOne(context.Background(), newVehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A vehicle with this number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicleID": newVehicle.VehicleID, "id": result.InsertedID})
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err := cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetAvailableVehicles projects vehicles ready for an assignment.
func (h *VehicleHandler) GetAvailableVehicles(c *gin.Context) {
	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), bson.M{"status": models.VehicleAvailable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err := cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	vehicleID := c.Param("id")
	var vehicle models.Vehicle
	err := h.DB.Collection("vehicles").FindOne(context.Background(), bson.M{"vehicleID": vehicleID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

type UpdateVehiclePayload struct {
	Type     string  `json:"type"`
	Capacity float64 `json:"capacity"`
	Status   string  `json:"status"`
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	var payload UpdateVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Type != "" {
		set["type"] = payload.Type
	}
	if payload.Capacity > 0 {
		set["capacity"] = payload.Capacity
	}
	if payload.Status != "" {
		switch payload.Status {
		case models.VehicleAvailable, models.VehicleInUse, models.VehicleMaintenance:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle status"})
			return
		}
		set["status"] = payload.Status
	}

	result, err := h.DB.Collection("vehicles").UpdateOne(context.Background(), bson.M{"vehicleID": vehicleID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("id")
	result, err := h.DB.Collection("vehicles").DeleteOne(context.Background(), bson.M{"vehicleID": vehicleID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
