// server/internal/notify/notifier_test.go
package notify

import (
	"context"
	"testing"

	"greenscape-api-server/internal/models"
	"greenscape-api-server/internal/socket"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDriverRecipientUsesServiceNum(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("onboarded driver resolves to login account", func(mt *mtest.T) {
		svc := NewService(mt.DB, socket.NewHub())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".drivers", mtest.FirstBatch, bson.D{
			{Key: "driverID", Value: "DRV-18C5B0F3"},
			{Key: "serviceNum", Value: "EMP-9C3E51AB"},
		}))

		require.Equal(mt, "EMP-9C3E51AB", svc.driverRecipient(context.Background(), "DRV-18C5B0F3"))
	})

	mt.Run("driver without login account falls back to driver id", func(mt *mtest.T) {
		svc := NewService(mt.DB, socket.NewHub())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".drivers", mtest.FirstBatch, bson.D{
			{Key: "driverID", Value: "DRV-18C5B0F3"},
		}))

		require.Equal(mt, "DRV-18C5B0F3", svc.driverRecipient(context.Background(), "DRV-18C5B0F3"))
	})

	mt.Run("unknown driver falls back to driver id", func(mt *mtest.T) {
		svc := NewService(mt.DB, socket.NewHub())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".drivers", mtest.FirstBatch))

		require.Equal(mt, "DRV-FFFFFFFF", svc.driverRecipient(context.Background(), "DRV-FFFFFFFF"))
	})
}

func TestNotifyResolvesDriverBeforePushing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delivery notification looks up the driver record", func(mt *mtest.T) {
		svc := NewService(mt.DB, socket.NewHub())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".drivers", mtest.FirstBatch, bson.D{
				{Key: "driverID", Value: "DRV-18C5B0F3"},
				{Key: "serviceNum", Value: "EMP-9C3E51AB"},
			}),
		)

		svc.Notify(context.Background(), models.Notification{
			Type:     models.NotificationDeliveryAssigned,
			OrderID:  "ORD-0A77FE21",
			DriverID: "DRV-18C5B0F3",
			Message:  "You have been assigned to deliver order ORD-0A77FE21",
		})

		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		require.Equal(mt, []string{"insert", "find"}, commands)
	})
}
