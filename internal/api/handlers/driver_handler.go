// server/internal/api/handlers/driver_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"greenscape-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DriverHandler struct {
	DB *mongo.Database
}

var contactPattern = regexp.MustCompile(`^\d{10}$`)

type DriverPayload struct {
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact" binding:"required"`
	LicenseNo string `json:"licenseNo" binding:"required"`
}

func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var payload DriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !contactPattern.MatchString(payload.Contact) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact must be exactly 10 digits"})
		return
	}

	newDriver := models.Driver{
		DriverID:     fmt.Sprintf("DRV-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:         payload.Name,
		Contact:      payload.Contact,
		LicenseNo:    payload.LicenseNo,
		Availability: models.DriverAvailable,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result, err := h.DB.Collection("drivers").InsertOne(context.Background(), newDriver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A driver with this license number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driverID": newDriver.DriverID, "id": result.InsertedID})
}

func (h *DriverHandler) GetAllDrivers(c *gin.Context) {
	filter := bson.M{}
	if availability := c.Query("availability"); availability != "" {
		filter["availability"] = availability
	}

	cursor, err := h.DB.Collection("drivers").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	defer cursor.Close(context.Background())

	var drivers []models.Driver
	if err := cursor.All(context.Background(), &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode drivers"})
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

// GetAvailableDrivers projects drivers that can take an assignment.
func (h *DriverHandler) GetAvailableDrivers(c *gin.Context) {
	cursor, err := h.DB.Collection("drivers").Find(context.Background(), bson.M{"availability": models.DriverAvailable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	defer cursor.Close(context.Background())

	var drivers []models.Driver
	if err := cursor.All(context.Background(), &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode drivers"})
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *DriverHandler) GetDriverByID(c *gin.Context) {
	driverID := c.Param("id")
	var driver models.Driver
	err := h.DB.Collection("drivers").FindOne(context.Background(), bson.M{"driverID": driverID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

type UpdateDriverPayload struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Availability string `json:"availability"`
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	driverID := c.Param("id")

	var payload UpdateDriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Name != "" {
		set["name"] = payload.Name
	}
	if payload.Contact != "" {
		if !contactPattern.MatchString(payload.Contact) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contact must be exactly 10 digits"})
			return
		}
		set["contact"] = payload.Contact
	}
	if payload.Availability != "" {
		switch payload.Availability {
		case models.DriverAvailable, models.DriverAssigned, models.DriverOnLeave:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability"})
			return
		}
		set["availability"] = payload.Availability
	}

	result, err := h.DB.Collection("drivers").UpdateOne(context.Background(), bson.M{"driverID": driverID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	driverID := c.Param("id")
	result, err := h.DB.Collection("drivers").DeleteOne(context.Background(), bson.M{"driverID": driverID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
