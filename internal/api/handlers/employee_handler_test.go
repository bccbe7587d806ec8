// server/internal/api/handlers/employee_handler_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestApproveApplicationTwiceCreatesNoDuplicateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second approval finds no open application", func(mt *mtest.T) {
		h := &EmployeeHandler{DB: mt.DB}

		// The status flip filters on Open; an already approved
		// application yields a null value from findAndModify.
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		w, c := newJSONRequest(http.MethodPut, "/api/employees/EMP-9C3E51AB/approve", `{"approveBy":"MGR-1"}`)
		c.Params = gin.Params{{Key: "id", Value: "EMP-9C3E51AB"}}
		h.ApproveApplication(c)

		require.Equal(mt, http.StatusNotFound, w.Code)
		// Nothing past the flip runs: no user insert, no role record, no
		// duplicate credentials.
		require.Equal(mt, []string{"findAndModify"}, commandNames(mt))
	})
}
