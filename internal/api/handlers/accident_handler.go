// server/internal/api/handlers/accident_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
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

type AccidentHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Notifier   notify.Notifier
}

// CreateReport files an accident report with optional photos. Photos go
// to S3 first; the report is only written once every upload succeeded.
func (h *AccidentHandler) CreateReport(c *gin.Context) {
	driverID := c.PostForm("driverId")
	vehicleNo := c.PostForm("vehicleNo")
	deliveryID := c.PostForm("deliveryId")
	description := c.PostForm("description")

	if driverID == "" || vehicleNo == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverId, vehicleNo and description are required"})
		return
	}

	ctx := context.Background()

	count, err := h.DB.Collection("drivers").CountDocuments(ctx, bson.M{"driverID": driverID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check driver"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	reportID := fmt.Sprintf("ACC-%s", strings.ToUpper(uuid.New().String()[:8]))

	photoURLs := []string{}
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for i, fileHeader := range form.File["photos"] {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
				return
			}
			objectKey := fmt.Sprintf("accidents/%s-%d%s", reportID, i, filepath.Ext(fileHeader.Filename))
			url, err := h.S3Uploader.UploadFile(ctx, file, objectKey, fileHeader.Header.Get("Content-Type"))
			file.Close()
			if err != nil {
				logrus.WithError(err).Error("Failed to upload accident photo")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
				return
			}
			photoURLs = append(photoURLs, url)
		}
	}

	newReport := models.AccidentReport{
		ReportID:    reportID,
		DriverID:    driverID,
		VehicleNo:   vehicleNo,
		DeliveryID:  deliveryID,
		Description: description,
		PhotoURLs:   photoURLs,
		Time:        time.Now(),
		Status:      models.AccidentReported,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := h.DB.Collection("accident_reports").InsertOne(ctx, newReport)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create accident report"})
		return
	}
	newReport.ID = result.InsertedID.(primitive.ObjectID)

	h.Notifier.Notify(ctx, models.Notification{
		Type:             models.NotificationAccidentReported,
		AccidentReportID: reportID,
		DriverID:         driverID,
		Message:          fmt.Sprintf("Accident reported by driver %s with vehicle %s", driverID, vehicleNo),
	})

	c.JSON(http.StatusCreated, newReport)
}

func (h *AccidentHandler) GetAllReports(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	cursor, err := h.DB.Collection("accident_reports").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query accident reports"})
		return
	}
	defer cursor.Close(context.Background())

	var reports []models.AccidentReport
	if err := cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode accident reports"})
		return
	}
	if reports == nil {
		reports = []models.AccidentReport{}
	}
	c.JSON(http.StatusOK, reports)
}

func (h *AccidentHandler) GetReportByID(c *gin.Context) {
	reportID := c.Param("id")
	var report models.AccidentReport
	err := h.DB.Collection("accident_reports").FindOne(context.Background(), bson.M{"reportID": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accident report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accident report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetReportsByDriver lists one driver's accident reports.
func (h *AccidentHandler) GetReportsByDriver(c *gin.Context) {
	driverID := c.Param("id")

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	cursor, err := h.DB.Collection("accident_reports").Find(context.Background(), bson.M{"driverId": driverID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query accident reports"})
		return
	}
	defer cursor.Close(context.Background())

	var reports []models.AccidentReport
	if err := cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode accident reports"})
		return
	}
	if reports == nil {
		reports = []models.AccidentReport{}
	}
	c.JSON(http.StatusOK, reports)
}

type UpdateAccidentStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReportStatus is the only way a report's status changes, and the
// value is restricted to the enum.
func (h *AccidentHandler) UpdateReportStatus(c *gin.Context) {
	reportID := c.Param("id")

	var payload UpdateAccidentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidAccidentStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid accident report status"})
		return
	}

	update := bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}}
	result, err := h.DB.Collection("accident_reports").UpdateOne(context.Background(), bson.M{"reportID": reportID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accident report"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accident report not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
