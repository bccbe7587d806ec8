// server/internal/api/handlers/employee_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"greenscape-api-server/internal/auth"
	"greenscape-api-server/internal/models"
	"greenscape-api-server/internal/s3"
	"greenscape-api-server/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	WhatsApp   *whatsapp.Client
}

// CreateApplication files an onboarding application. The CV arrives as a
// multipart file and is stored on S3.
func (h *EmployeeHandler) CreateApplication(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	phone := c.PostForm("phone")
	role := c.PostForm("role")

	if name == "" || email == "" || phone == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, phone and role are required"})
		return
	}
	switch role {
	case models.RoleDriver, models.RoleLandscaper, models.RoleManagement:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be driver, landscaper or management"})
		return
	}

	ctx := context.Background()
	serviceNum := fmt.Sprintf("EMP-%s", strings.ToUpper(uuid.New().String()[:8]))

	cvURL := ""
	if fileHeader, err := c.FormFile("cv"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read CV"})
			return
		}
		defer file.Close()

		objectKey := fmt.Sprintf("cvs/%s%s", serviceNum, filepath.Ext(fileHeader.Filename))
		cvURL, err = h.S3Uploader.UploadFile(ctx, file, objectKey, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			logrus.WithError(err).Error("Failed to upload CV")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store CV"})
			return
		}
	}

	newApplication := models.EmployeeApplication{
		ServiceNum: serviceNum,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Role:       role,
		CVUrl:      cvURL,
		Status:     models.EmployeeStatusOpen,
		CreatedAt:  time.Now(),
	}

	result, err := h.DB.Collection("employees").InsertOne(ctx, newApplication)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}
	newApplication.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, newApplication)
}

func (h *EmployeeHandler) GetAllApplications(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("employees").Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query applications"})
		return
	}
	defer cursor.Close(context.Background())

	var applications []models.EmployeeApplication
	if err := cursor.All(context.Background(), &applications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode applications"})
		return
	}
	if applications == nil {
		applications = []models.EmployeeApplication{}
	}
	c.JSON(http.StatusOK, applications)
}

func (h *EmployeeHandler) GetApplicationByServiceNum(c *gin.Context) {
	serviceNum := c.Param("id")
	var application models.EmployeeApplication
	err := h.DB.Collection("employees").FindOne(context.Background(), bson.M{"serviceNum": serviceNum}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		return
	}
	c.JSON(http.StatusOK, application)
}

type ApproveEmployeePayload struct {
	ApproveBy string `json:"approveBy" binding:"required"`
}

// ApproveApplication flips an Open application to Approve and carries out
// the onboarding side effects: generate a password, create the login
// user, create the role record, send the credentials over WhatsApp.
//
// The status flip filters on Open, so approving twice finds nothing the
// second time. The side effects after the flip are best-effort and
// individually idempotent; a failure is logged, never rolled back.
func (h *EmployeeHandler) ApproveApplication(c *gin.Context) {
	serviceNum := c.Param("id")

	var payload ApproveEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	password, err := auth.GeneratePassword(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate password"})
		return
	}

	// Flip the record only if it is still Open.
	var application models.EmployeeApplication
	err = h.DB.Collection("employees").FindOneAndUpdate(ctx,
		bson.M{"serviceNum": serviceNum, "status": models.EmployeeStatusOpen},
		bson.M{"$set": bson.M{
			"status":     models.EmployeeStatusApprove,
			"approvedBy": payload.ApproveBy,
			"approvedAt": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open application found for this service number"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve application"})
		return
	}

	// Create the login account unless one already exists for this
	// service number.
	userCollection := h.DB.Collection("users")
	count, err := userCollection.CountDocuments(ctx, bson.M{"serviceNum": serviceNum})
	if err != nil {
		logrus.WithError(err).WithField("serviceNum", serviceNum).Error("Failed to check existing user")
	} else if count == 0 {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			logrus.WithError(err).Error("Failed to hash generated password")
		} else {
			newUser := models.User{
				ServiceNum: serviceNum,
				Email:      application.Email,
				Name:       application.Name,
				Phone:      application.Phone,
				Password:   hashed,
				Role:       application.Role,
				CreatedAt:  time.Now(),
			}
			if _, err := userCollection.InsertOne(ctx, newUser); err != nil {
				logrus.WithError(err).WithField("serviceNum", serviceNum).Error("Failed to create login user")
			}
		}
	}

	h.createRoleRecord(ctx, application)

	// Credentials go out over WhatsApp; a send failure does not undo the
	// approval.
	message := whatsapp.CredentialsMessage(application.Name, application.Email, password)
	if err := h.WhatsApp.Send(application.Phone, message); err != nil {
		logrus.WithError(err).WithField("serviceNum", serviceNum).Warn("Failed to send WhatsApp credentials")
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "serviceNum": serviceNum})
}

func (h *EmployeeHandler) createRoleRecord(ctx context.Context, application models.EmployeeApplication) {
	var collection string
	var record interface{}

	switch application.Role {
	case models.RoleDriver:
		collection = "drivers"
		// Drivers approved through onboarding start Available; contact
		// is the application phone.
		record = models.Driver{
			DriverID:     fmt.Sprintf("DRV-%s", strings.ToUpper(uuid.New().String()[:8])),
			ServiceNum:   application.ServiceNum,
			Name:         application.Name,
			Contact:      application.Phone,
			LicenseNo:    fmt.Sprintf("PENDING-%s", application.ServiceNum),
			Availability: models.DriverAvailable,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
	case models.RoleLandscaper:
		collection = "landscapers"
		record = models.Landscaper{
			ServiceNum: application.ServiceNum,
			Name:       application.Name,
			Phone:      application.Phone,
			CreatedAt:  time.Now(),
		}
	case models.RoleManagement:
		collection = "management_employees"
		record = models.ManagementEmployee{
			ServiceNum: application.ServiceNum,
			Name:       application.Name,
			Phone:      application.Phone,
			CreatedAt:  time.Now(),
		}
	default:
		return
	}

	if _, err := h.DB.Collection(collection).InsertOne(ctx, record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"serviceNum": application.ServiceNum,
			"role":       application.Role,
		}).Error("Failed to create role record")
	}
}

// RejectApplication sends a best-effort WhatsApp notice and deletes the
// application. The notice failing does not block the deletion.
func (h *EmployeeHandler) RejectApplication(c *gin.Context) {
	serviceNum := c.Param("id")
	ctx := context.Background()

	var application models.EmployeeApplication
	err := h.DB.Collection("employees").FindOne(ctx, bson.M{"serviceNum": serviceNum, "status": models.EmployeeStatusOpen}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open application found for this service number"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		return
	}

	if err := h.WhatsApp.Send(application.Phone, whatsapp.RejectionMessage(application.Name)); err != nil {
		logrus.WithError(err).WithField("serviceNum", serviceNum).Warn("Failed to send WhatsApp rejection notice")
	}

	if _, err := h.DB.Collection("employees").DeleteOne(ctx, bson.M{"serviceNum": serviceNum}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteApplication removes an application outright, without the
// notification flow. Admin housekeeping.
func (h *EmployeeHandler) DeleteApplication(c *gin.Context) {
	serviceNum := c.Param("id")
	result, err := h.DB.Collection("employees").DeleteOne(context.Background(), bson.M{"serviceNum": serviceNum})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
