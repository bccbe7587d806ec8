// server/internal/api/handlers/order_handler_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenscape-api-server/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newJSONRequest(method, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func newFormRequest(method, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return w, c
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func TestCreateOrderInsufficientStockLeavesCartIntact(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second line short on stock refunds the first line", func(mt *mtest.T) {
		h := &OrderHandler{DB: mt.DB, Notifier: notify.Noop{}}

		cartDoc := bson.D{
			{Key: "sessionId", Value: "sess-1"},
			{Key: "items", Value: bson.A{
				bson.D{
					{Key: "itemId", Value: "ITM-AAAA0001"},
					{Key: "itemName", Value: "Garden Hose"},
					{Key: "pricePerItem", Value: 100.0},
					{Key: "quantity", Value: 2},
					{Key: "totalPrice", Value: 200.0},
				},
				bson.D{
					{Key: "itemId", Value: "ITM-BBBB0002"},
					{Key: "itemName", Value: "River Sand"},
					{Key: "pricePerItem", Value: 50.0},
					{Key: "quantity", Value: 5},
					{Key: "totalPrice", Value: 250.0},
				},
			}},
			{Key: "totalAmount", Value: 450.0},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".carts", mtest.FirstBatch, cartDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		w, c := newJSONRequest(http.MethodPost, "/api/orders", `{"sessionId":"sess-1","customerId":"CUS-1"}`)
		h.CreateOrder(c)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		require.Contains(mt, w.Body.String(), "Insufficient stock for item River Sand")

		// One cart find, one decrement, one failed decrement, one refund.
		// No order insert, no cart delete.
		require.Equal(mt, []string{"find", "update", "update", "update"}, commandNames(mt))
	})
}

func TestDeleteOrderRepeatDoesNotRefundAgain(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("losing the delete race skips the refund", func(mt *mtest.T) {
		h := &OrderHandler{DB: mt.DB, Notifier: notify.Noop{}}

		orderDoc := bson.D{
			{Key: "orderID", Value: "ORD-9C3E51AB"},
			{Key: "customerId", Value: "CUS-1"},
			{Key: "status", Value: "Pending"},
			{Key: "paymentStatus", Value: "unpaid"},
			{Key: "items", Value: bson.A{bson.D{
				{Key: "itemId", Value: "ITM-AAAA0001"},
				{Key: "itemName", Value: "Garden Hose"},
				{Key: "quantity", Value: 2},
			}}},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch, orderDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		w, c := newJSONRequest(http.MethodDelete, "/api/orders/ORD-9C3E51AB", "")
		c.Params = gin.Params{{Key: "id", Value: "ORD-9C3E51AB"}}
		h.DeleteOrder(c)

		require.Equal(mt, http.StatusNotFound, w.Code)
		require.Equal(mt, []string{"find", "delete"}, commandNames(mt))
	})
}
