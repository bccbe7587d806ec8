// server/internal/api/handlers/order_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

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

type OrderHandler struct {
	DB       *mongo.Database
	Notifier notify.Notifier
}

type CreateOrderPayload struct {
	SessionID  string `json:"sessionId" binding:"required"`
	CustomerID string `json:"customerId" binding:"required"`
}

type UpdateOrderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// decrementStock takes n units off one item, guarded so the quantity can
// never go negative. Returns false when stock is insufficient.
func (h *OrderHandler) decrementStock(ctx context.Context, itemID string, n int) (bool, error) {
	result, err := h.DB.Collection("items").UpdateOne(ctx,
		bson.M{"itemID": itemID, "quantity": bson.M{"$gte": n}},
		bson.M{"$inc": bson.M{"quantity": -n}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// refundStock gives units back after a cancellation or a failed
// multi-line reservation.
func (h *OrderHandler) refundStock(ctx context.Context, items []models.OrderItem) {
	for _, line := range items {
		_, err := h.DB.Collection("items").UpdateOne(ctx,
			bson.M{"itemID": line.ItemID},
			bson.M{"$inc": bson.M{"quantity": line.Quantity}, "$set": bson.M{"updatedAt": time.Now()}},
		)
		if err != nil {
			logrus.WithError(err).WithField("itemID", line.ItemID).Error("Failed to refund stock")
		}
	}
}

// CreateOrder converts a session's cart into an order. Stock is taken
// with guarded decrements; if any line has insufficient stock, the
// decrements already made are compensated and the cart is left intact.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	var cart models.Cart
	err := h.DB.Collection("carts").FindOne(ctx, bson.M{"sessionId": payload.SessionID}).Decode(&cart)
	if err == mongo.ErrNoDocuments || (err == nil && len(cart.Items) == 0) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found or is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	// Take stock line by line. On the first failure give back what was
	// already taken, so the cart converts all-or-nothing.
	taken := []models.OrderItem{}
	for _, line := range cart.Items {
		ok, err := h.decrementStock(ctx, line.ItemID, line.Quantity)
		if err != nil {
			h.refundStock(ctx, taken)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve stock"})
			return
		}
		if !ok {
			h.refundStock(ctx, taken)
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Insufficient stock for item %s", line.ItemName)})
			return
		}
		taken = append(taken, models.OrderItem{
			ItemID:       line.ItemID,
			ItemName:     line.ItemName,
			PricePerItem: line.PricePerItem,
			Quantity:     line.Quantity,
			TotalPrice:   line.TotalPrice,
		})
	}

	// Total comes from the cart snapshots, not current item prices.
	total := 0.0
	for _, line := range taken {
		total += line.TotalPrice
	}

	newOrder := models.Order{
		OrderID:       fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.New().String()[:8])),
		CustomerID:    payload.CustomerID,
		Items:         taken,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		OrderDate:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	result, err := h.DB.Collection("orders").InsertOne(ctx, newOrder)
	if err != nil {
		h.refundStock(ctx, taken)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	newOrder.ID = result.InsertedID.(primitive.ObjectID)

	if _, err := h.DB.Collection("carts").DeleteOne(ctx, bson.M{"sessionId": payload.SessionID}); err != nil {
		// The order exists and stock is taken; a leftover cart is only a
		// cosmetic problem, so log and keep going.
		logrus.WithError(err).WithField("sessionId", payload.SessionID).Warn("Failed to delete cart after order creation")
	}

	h.Notifier.Notify(ctx, models.Notification{
		Type:       models.NotificationOrderCreated,
		OrderID:    newOrder.OrderID,
		CustomerID: newOrder.CustomerID,
		Message:    fmt.Sprintf("Order %s placed for Rs. %.2f", newOrder.OrderID, newOrder.TotalAmount),
	})

	c.JSON(http.StatusCreated, newOrder)
}

// GetAllOrders lists orders newest first, optionally filtered by status
// or customer.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := h.DB.Collection("orders").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.Order
	if err := cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID := c.Param("id")
	var order models.Order
	err := h.DB.Collection("orders").FindOne(context.Background(), bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetPendingOrders projects orders still awaiting payment.
func (h *OrderHandler) GetPendingOrders(c *gin.Context) {
	h.listByFilter(c, bson.M{"status": models.OrderStatusPending})
}

// GetPaidOrders projects paid orders that have no delivery assignment yet.
func (h *OrderHandler) GetPaidOrders(c *gin.Context) {
	h.listByFilter(c, bson.M{
		"status":             models.OrderStatusPaid,
		"deliveryAssignment": bson.M{"$in": bson.A{nil, ""}},
	})
}

func (h *OrderHandler) listByFilter(c *gin.Context, filter bson.M) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := h.DB.Collection("orders").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.Order
	if err := cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order along the status graph. Transitions
// outside the table (e.g. Completed back to Pending) are rejected.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var payload UpdateOrderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidOrderStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	ctx := context.Background()
	var order models.Order
	err := h.DB.Collection("orders").FindOne(ctx, bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	if !models.CanTransitionOrder(order.Status, payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot change order status from %s to %s", order.Status, payload.Status)})
		return
	}

	update := bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}}
	// Guard on the previous status so a concurrent update cannot sneak an
	// order through a forbidden transition.
	result, err := h.DB.Collection("orders").UpdateOne(ctx, bson.M{"orderID": orderID, "status": order.Status}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed concurrently, please retry"})
		return
	}

	// Cancelling releases the reserved stock.
	if payload.Status == models.OrderStatusCancelled {
		h.refundStock(ctx, order.Items)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteOrder removes an order and refunds the stock of every contained
// line. Completed orders cannot be deleted; a repeated delete is a plain
// 404 with no further stock mutation.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")
	ctx := context.Background()

	var order models.Order
	err := h.DB.Collection("orders").FindOne(ctx, bson.M{"orderID": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}
	if order.Status == models.OrderStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completed orders cannot be deleted"})
		return
	}

	result, err := h.DB.Collection("orders").DeleteOne(ctx, bson.M{"orderID": orderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	if result.DeletedCount == 0 {
		// Lost a race with another delete; that delete did the refund.
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// A cancelled order was already refunded when it was cancelled.
	if order.Status != models.OrderStatusCancelled {
		h.refundStock(ctx, order.Items)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
