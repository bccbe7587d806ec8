// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"greenscape-api-server/internal/models"
	"greenscape-api-server/internal/notify"
	"greenscape-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Notifier   notify.Notifier
}

// CreatePayment records a payment for an order and marks the order paid.
// The request is multipart: BankSlip payments carry a slip image that is
// stored on S3 before anything is written to the database.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	orderID := c.PostForm("orderId")
	customerID := c.PostForm("customerId")
	method := c.PostForm("method")
	notes := c.PostForm("notes")
	amountStr := c.PostForm("amount")

	if orderID == "" || customerID == "" || method == "" || amountStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId, customerId, method and amount are required"})
		return
	}
	if method != models.PaymentMethodBankSlip && method != models.PaymentMethodCash {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method must be BankSlip or Cash"})
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}

	ctx := context.Background()

	var order models.Order
	if err := h.DB.Collection("orders").FindOne(ctx, bson.M{"orderID": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check order"})
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has already been paid"})
		return
	}
	// Assigned covers orders dispatched ahead of payment; they settle the
	// payment flag without leaving Assigned.
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusAssigned {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Order in status %s cannot be paid", order.Status)})
		return
	}

	bankSlipURL := ""
	if method == models.PaymentMethodBankSlip {
		fileHeader, err := c.FormFile("bankSlip")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bank slip image is required for BankSlip payments"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read bank slip"})
			return
		}
		defer file.Close()

		objectKey := fmt.Sprintf("slips/%s-%s%s", orderID, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
		bankSlipURL, err = h.S3Uploader.UploadFile(ctx, file, objectKey, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			logrus.WithError(err).Error("Failed to upload bank slip")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store bank slip"})
			return
		}
	}

	newPayment := models.Payment{
		PaymentID:   fmt.Sprintf("PAY-%s", strings.ToUpper(uuid.New().String()[:8])),
		OrderID:     orderID,
		CustomerID:  customerID,
		Amount:      amount,
		Method:      method,
		BankSlipURL: bankSlipURL,
		Status:      models.PaymentCompleted,
		Notes:       notes,
		CreatedAt:   time.Now(),
	}

	result, err := h.DB.Collection("payments").InsertOne(ctx, newPayment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	newPayment.ID = result.InsertedID.(primitive.ObjectID)

	set := bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"paymentID":     newPayment.PaymentID,
		"updatedAt":     time.Now(),
	}
	if order.Status == models.OrderStatusPending {
		set["status"] = models.OrderStatusPaid
	}
	updateResult, err := h.DB.Collection("orders").UpdateOne(ctx,
		bson.M{"orderID": orderID, "status": order.Status, "paymentStatus": models.PaymentStatusUnpaid},
		bson.M{"$set": set},
	)
	if err != nil || updateResult.MatchedCount == 0 {
		// The payment row exists; mark it failed rather than leave the
		// order and payment telling different stories.
		if _, updErr := h.DB.Collection("payments").UpdateOne(ctx,
			bson.M{"paymentID": newPayment.PaymentID},
			bson.M{"$set": bson.M{"status": models.PaymentFailed}},
		); updErr != nil {
			logrus.WithError(updErr).WithField("paymentID", newPayment.PaymentID).Error("Failed to mark payment as failed")
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order payment state"})
		} else {
			c.JSON(http.StatusConflict, gin.H{"error": "Order changed concurrently, please retry"})
		}
		return
	}

	h.Notifier.Notify(ctx, models.Notification{
		Type:       models.NotificationPaymentReceived,
		OrderID:    orderID,
		CustomerID: customerID,
		Message:    fmt.Sprintf("Payment of Rs. %.2f received for order %s", amount, orderID),
	})

	c.JSON(http.StatusCreated, newPayment)
}

func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("payments").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	defer cursor.Close(context.Background())

	var payments []models.Payment
	if err := cursor.All(context.Background(), &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentsByOrder lists payments recorded against one order.
func (h *PaymentHandler) GetPaymentsByOrder(c *gin.Context) {
	orderID := c.Param("id")

	cursor, err := h.DB.Collection("payments").Find(context.Background(), bson.M{"orderId": orderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	defer cursor.Close(context.Background())

	var payments []models.Payment
	if err := cursor.All(context.Background(), &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}
