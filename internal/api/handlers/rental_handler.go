// server/internal/api/handlers/rental_handler.go
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
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RentalHandler struct {
	DB *mongo.Database
}

type CreateRentalPayload struct {
	MachineID  string `json:"machineID" binding:"required"`
	CustomerID string `json:"customerId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Duration   int    `json:"duration" binding:"required"` // days
}

// CreateRental books machinery units. The machinery quantity is taken
// with a guarded decrement, the same way order stock is.
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var payload CreateRentalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Quantity < 1 || payload.Duration < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity and duration must be at least 1"})
		return
	}

	ctx := context.Background()

	var machine models.Machinery
	err := h.DB.Collection("machinery").FindOne(ctx, bson.M{"machineID": payload.MachineID}).Decode(&machine)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machinery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check machinery"})
		return
	}

	result, err := h.DB.Collection("machinery").UpdateOne(ctx,
		bson.M{"machineID": payload.MachineID, "quantity": bson.M{"$gte": payload.Quantity}},
		bson.M{"$inc": bson.M{"quantity": -payload.Quantity}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve machinery"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Insufficient units of %s available", machine.Name)})
		return
	}

	newRental := models.RentalOrder{
		RentalID:   fmt.Sprintf("RNT-%s", strings.ToUpper(uuid.New().String()[:8])),
		MachineID:  payload.MachineID,
		CustomerID: payload.CustomerID,
		Quantity:   payload.Quantity,
		Duration:   payload.Duration,
		TotalPrice: float64(payload.Quantity) * float64(payload.Duration) * machine.RatePerDay,
		Status:     models.RentalStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	insertResult, err := h.DB.Collection("rental_orders").InsertOne(ctx, newRental)
	if err != nil {
		// Compensate the reservation so units are not lost.
		h.refundMachinery(ctx, payload.MachineID, payload.Quantity)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rental order"})
		return
	}
	newRental.ID = insertResult.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, newRental)
}

func (h *RentalHandler) refundMachinery(ctx context.Context, machineID string, quantity int) {
	_, err := h.DB.Collection("machinery").UpdateOne(ctx,
		bson.M{"machineID": machineID},
		bson.M{"$inc": bson.M{"quantity": quantity}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.WithError(err).WithField("machineID", machineID).Error("Failed to refund machinery units")
	}
}

func (h *RentalHandler) GetAllRentals(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("rental_orders").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query rental orders"})
		return
	}
	defer cursor.Close(context.Background())

	var rentals []models.RentalOrder
	if err := cursor.All(context.Background(), &rentals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode rental orders"})
		return
	}
	if rentals == nil {
		rentals = []models.RentalOrder{}
	}
	c.JSON(http.StatusOK, rentals)
}

func (h *RentalHandler) GetRentalByID(c *gin.Context) {
	rentalID := c.Param("id")
	var rental models.RentalOrder
	err := h.DB.Collection("rental_orders").FindOne(context.Background(), bson.M{"rentalID": rentalID}).Decode(&rental)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rental order"})
		return
	}
	c.JSON(http.StatusOK, rental)
}

type UpdateRentalStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRentalStatus moves a rental between Pending, Active and Returned.
// Marking it Returned refunds the machinery units.
func (h *RentalHandler) UpdateRentalStatus(c *gin.Context) {
	rentalID := c.Param("id")

	var payload UpdateRentalStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch payload.Status {
	case models.RentalStatusPending, models.RentalStatusActive, models.RentalStatusReturned:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental status"})
		return
	}

	ctx := context.Background()
	var rental models.RentalOrder
	err := h.DB.Collection("rental_orders").FindOne(ctx, bson.M{"rentalID": rentalID}).Decode(&rental)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rental order"})
		return
	}
	if rental.Status == models.RentalStatusReturned {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rental order is already returned"})
		return
	}

	update := bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}}
	result, err := h.DB.Collection("rental_orders").UpdateOne(ctx, bson.M{"rentalID": rentalID, "status": rental.Status}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rental order"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Rental status changed concurrently, please retry"})
		return
	}

	if payload.Status == models.RentalStatusReturned {
		h.refundMachinery(ctx, rental.MachineID, rental.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteRental cancels a rental and refunds the units unless the rental
// was already returned.
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	rentalID := c.Param("id")
	ctx := context.Background()

	var rental models.RentalOrder
	err := h.DB.Collection("rental_orders").FindOne(ctx, bson.M{"rentalID": rentalID}).Decode(&rental)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rental order"})
		return
	}

	result, err := h.DB.Collection("rental_orders").DeleteOne(ctx, bson.M{"rentalID": rentalID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rental order"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rental order not found"})
		return
	}

	if rental.Status != models.RentalStatusReturned {
		h.refundMachinery(ctx, rental.MachineID, rental.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
