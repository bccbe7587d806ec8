// server/internal/api/handlers/assignment_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"greenscape-api-server/config"
	"greenscape-api-server/internal/notify"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateAssignmentLostVehicleClaimRollsBackDriver(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("vehicle taken elsewhere releases the claimed driver", func(mt *mtest.T) {
		h := &AssignmentHandler{DB: mt.DB, Cfg: config.Config{}, Notifier: notify.Noop{}}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".drivers", mtest.FirstBatch, bson.D{
				{Key: "driverID", Value: "DRV-18C5B0F3"},
				{Key: "name", Value: "Kamal Perera"},
				{Key: "availability", Value: "Available"},
			}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".vehicles", mtest.FirstBatch, bson.D{
				{Key: "vehicleID", Value: "VEH-6D20A1BC"},
				{Key: "vehicleNo", Value: "WP-1234"},
				{Key: "status", Value: "Available"},
			}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch, bson.D{
				{Key: "orderID", Value: "ORD-9C3E51AB"},
				{Key: "status", Value: "Paid"},
				{Key: "paymentStatus", Value: "paid"},
			}),
			// Driver claim wins, vehicle claim loses, driver release.
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		w, c := newJSONRequest(http.MethodPost, "/delivery-assignments",
			`{"orderId":"ORD-9C3E51AB","driverId":"DRV-18C5B0F3","vehicleId":"VEH-6D20A1BC"}`)
		h.CreateAssignment(c)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		require.Contains(mt, w.Body.String(), "Vehicle was taken elsewhere")

		// Three lookups, the two claims, then the driver rollback. No
		// assignment insert and no order write.
		require.Equal(mt, []string{"find", "find", "find", "update", "update", "update"}, commandNames(mt))
	})
}
