// server/internal/api/handlers/payment_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"greenscape-api-server/internal/notify"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreatePaymentForAssignedUnpaidOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("cash payment settles an order dispatched before payment", func(mt *mtest.T) {
		h := &PaymentHandler{DB: mt.DB, Notifier: notify.Noop{}}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch, bson.D{
				{Key: "orderID", Value: "ORD-9C3E51AB"},
				{Key: "customerId", Value: "CUS-1"},
				{Key: "status", Value: "Assigned"},
				{Key: "paymentStatus", Value: "unpaid"},
				{Key: "totalAmount", Value: 500.0},
			}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		w, c := newFormRequest(http.MethodPost, "/item-payments",
			"orderId=ORD-9C3E51AB&customerId=CUS-1&method=Cash&amount=500")
		h.CreatePayment(c)

		require.Equal(mt, http.StatusCreated, w.Code)
		require.Contains(mt, w.Body.String(), `"Completed"`)
		require.Equal(mt, []string{"find", "insert", "update"}, commandNames(mt))
	})

	mt.Run("completed order is rejected", func(mt *mtest.T) {
		h := &PaymentHandler{DB: mt.DB, Notifier: notify.Noop{}}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch, bson.D{
				{Key: "orderID", Value: "ORD-9C3E51AB"},
				{Key: "status", Value: "Completed"},
				{Key: "paymentStatus", Value: "unpaid"},
			}),
		)

		w, c := newFormRequest(http.MethodPost, "/item-payments",
			"orderId=ORD-9C3E51AB&customerId=CUS-1&method=Cash&amount=500")
		h.CreatePayment(c)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		require.Contains(mt, w.Body.String(), "cannot be paid")
	})
}
