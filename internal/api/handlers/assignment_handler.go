// server/internal/api/handlers/assignment_handler.go
package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greenscape-api-server/config"
	"greenscape-api-server/internal/models"
	"greenscape-api-server/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentHandler struct {
	DB       *mongo.Database
	Cfg      config.Config
	Notifier notify.Notifier
}

type CreateAssignmentPayload struct {
	OrderID     string `json:"orderId" binding:"required"`
	DriverID    string `json:"driverId" binding:"required"`
	VehicleID   string `json:"vehicleId" binding:"required"`
	AllowUnpaid bool   `json:"allowUnpaid"`
}

// CreateAssignment pairs an order with a driver and a vehicle. Driver and
// vehicle are claimed with conditional updates so two concurrent requests
// cannot both win the same resources; a lost vehicle claim rolls the
// driver claim back.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var payload CreateAssignmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	var driver models.Driver
	if err := h.DB.Collection("drivers").FindOne(ctx, bson.M{"driverID": payload.DriverID}).Decode(&driver); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check driver"})
		return
	}
	var vehicle models.Vehicle
	if err := h.DB.Collection("vehicles").FindOne(ctx, bson.M{"vehicleID": payload.VehicleID}).Decode(&vehicle); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check vehicle"})
		return
	}
	var order models.Order
	if err := h.DB.Collection("orders").FindOne(ctx, bson.M{"orderID": payload.OrderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check order"})
		return
	}

	if driver.Availability != models.DriverAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Driver is not available (currently %s)", driver.Availability)})
		return
	}
	if vehicle.Status != models.VehicleAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Vehicle is not available (currently %s)", vehicle.Status)})
		return
	}
	if order.DeliveryAssignment != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order already has a delivery assignment"})
		return
	}

	// Payment gate, unless the demo escape hatch is open.
	allowUnpaid := payload.AllowUnpaid || h.Cfg.Delivery.AllowUnpaidAssignments
	if !allowUnpaid {
		if order.PaymentStatus != models.PaymentStatusPaid || order.Status != models.OrderStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order has not been paid yet"})
			return
		}
	}

	// Claim the driver. The availability filter makes the flip atomic.
	driverClaim, err := h.DB.Collection("drivers").UpdateOne(ctx,
		bson.M{"driverID": payload.DriverID, "availability": models.DriverAvailable},
		bson.M{"$set": bson.M{"availability": models.DriverAssigned, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim driver"})
		return
	}
	if driverClaim.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver was assigned elsewhere, please pick another"})
		return
	}

	// Claim the vehicle; roll the driver back if the claim is lost.
	vehicleClaim, err := h.DB.Collection("vehicles").UpdateOne(ctx,
		bson.M{"vehicleID": payload.VehicleID, "status": models.VehicleAvailable},
		bson.M{"$set": bson.M{"status": models.VehicleInUse, "updatedAt": time.Now()}},
	)
	if err != nil || vehicleClaim.MatchedCount == 0 {
		h.releaseDriver(ctx, payload.DriverID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim vehicle"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle was taken elsewhere, please pick another"})
		}
		return
	}

	now := time.Now()
	newAssignment := models.DeliveryAssignment{
		AssignmentID: fmt.Sprintf("ASG-%s", strings.ToUpper(uuid.New().String()[:8])),
		OrderID:      payload.OrderID,
		DriverID:     payload.DriverID,
		VehicleID:    payload.VehicleID,
		Status:       models.AssignmentStatusAssigned,
		AssignedDate: now,
		UpdatedAt:    now,
	}

	result, err := h.DB.Collection("delivery_assignments").InsertOne(ctx, newAssignment)
	if err != nil {
		h.releaseDriver(ctx, payload.DriverID)
		h.releaseVehicle(ctx, payload.VehicleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery assignment"})
		return
	}
	newAssignment.ID = result.InsertedID.(primitive.ObjectID)

	// Stamp the order with the assignment cross-references.
	orderUpdate := bson.M{"$set": bson.M{
		"status":             models.OrderStatusAssigned,
		"assignedDriver":     payload.DriverID,
		"assignedVehicle":    payload.VehicleID,
		"deliveryAssignment": newAssignment.AssignmentID,
		"assignedAt":         now,
		"updatedAt":          now,
	}}
	if _, err := h.DB.Collection("orders").UpdateOne(ctx, bson.M{"orderID": payload.OrderID}, orderUpdate); err != nil {
		// Compensate the whole claim so nothing stays half-assigned.
		h.releaseDriver(ctx, payload.DriverID)
		h.releaseVehicle(ctx, payload.VehicleID)
		if _, delErr := h.DB.Collection("delivery_assignments").DeleteOne(ctx, bson.M{"assignmentID": newAssignment.AssignmentID}); delErr != nil {
			logrus.WithError(delErr).WithField("assignmentID", newAssignment.AssignmentID).Error("Failed to remove orphan assignment")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order with assignment"})
		return
	}

	h.Notifier.Notify(ctx, models.Notification{
		Type:     models.NotificationDeliveryAssigned,
		OrderID:  payload.OrderID,
		DriverID: payload.DriverID,
		Message:  fmt.Sprintf("You have been assigned to deliver order %s with vehicle %s", payload.OrderID, vehicle.VehicleNo),
	})

	c.JSON(http.StatusCreated, newAssignment)
}

func (h *AssignmentHandler) releaseDriver(ctx context.Context, driverID string) {
	_, err := h.DB.Collection("drivers").UpdateOne(ctx,
		bson.M{"driverID": driverID, "availability": models.DriverAssigned},
		bson.M{"$set": bson.M{"availability": models.DriverAvailable, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.WithError(err).WithField("driverID", driverID).Error("Failed to release driver")
	}
}

func (h *AssignmentHandler) releaseVehicle(ctx context.Context, vehicleID string) {
	_, err := h.DB.Collection("vehicles").UpdateOne(ctx,
		bson.M{"vehicleID": vehicleID, "status": models.VehicleInUse},
		bson.M{"$set": bson.M{"status": models.VehicleAvailable, "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.WithError(err).WithField("vehicleID", vehicleID).Error("Failed to release vehicle")
	}
}

func (h *AssignmentHandler) GetAllAssignments(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})
	cursor, err := h.DB.Collection("delivery_assignments").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	defer cursor.Close(context.Background())

	var assignments []models.DeliveryAssignment
	if err := cursor.All(context.Background(), &assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
		return
	}
	if assignments == nil {
		assignments = []models.DeliveryAssignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetAssignmentByID(c *gin.Context) {
	assignmentID := c.Param("id")
	var assignment models.DeliveryAssignment
	err := h.DB.Collection("delivery_assignments").FindOne(context.Background(), bson.M{"assignmentID": assignmentID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// GetDriverDeliveries lists a driver's assignments, newest first.
func (h *AssignmentHandler) GetDriverDeliveries(c *gin.Context) {
	driverID := c.Param("id")

	opts := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})
	cursor, err := h.DB.Collection("delivery_assignments").Find(context.Background(), bson.M{"driverId": driverID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	defer cursor.Close(context.Background())

	var assignments []models.DeliveryAssignment
	if err := cursor.All(context.Background(), &assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
		return
	}
	if assignments == nil {
		assignments = []models.DeliveryAssignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

type UpdateAssignmentStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAssignmentStatus moves an assignment through Assigned, In Transit
// and Delivered. Delivered completes the order and releases the driver
// and vehicle.
func (h *AssignmentHandler) UpdateAssignmentStatus(c *gin.Context) {
	assignmentID := c.Param("id")

	var payload UpdateAssignmentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidAssignmentStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment status"})
		return
	}

	ctx := context.Background()
	var assignment models.DeliveryAssignment
	err := h.DB.Collection("delivery_assignments").FindOne(ctx, bson.M{"assignmentID": assignmentID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		return
	}
	if assignment.Status == models.AssignmentStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignment is already delivered"})
		return
	}

	update := bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}}
	result, err := h.DB.Collection("delivery_assignments").UpdateOne(ctx, bson.M{"assignmentID": assignmentID, "status": assignment.Status}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment status changed concurrently, please retry"})
		return
	}

	if payload.Status == models.AssignmentStatusDelivered {
		if _, err := h.DB.Collection("orders").UpdateOne(ctx,
			bson.M{"orderID": assignment.OrderID, "status": models.OrderStatusAssigned},
			bson.M{"$set": bson.M{"status": models.OrderStatusCompleted, "updatedAt": time.Now()}},
		); err != nil {
			logrus.WithError(err).WithField("orderID", assignment.OrderID).Error("Failed to complete order after delivery")
		}
		h.releaseDriver(ctx, assignment.DriverID)
		h.releaseVehicle(ctx, assignment.VehicleID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ExportAssignmentsCSV streams all assignments as a CSV attachment.
func (h *AssignmentHandler) ExportAssignmentsCSV(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})
	cursor, err := h.DB.Collection("delivery_assignments").Find(context.Background(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	defer cursor.Close(context.Background())

	var assignments []models.DeliveryAssignment
	if err := cursor.All(context.Background(), &assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="delivery_assignments.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"assignmentID", "orderId", "driverId", "vehicleId", "status", "assignedDate"})
	for _, a := range assignments {
		w.Write([]string{
			a.AssignmentID,
			a.OrderID,
			a.DriverID,
			a.VehicleID,
			a.Status,
			a.AssignedDate.Format(time.RFC3339),
		})
	}
	w.Flush()
}
