package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, Status("break_conflict"))
	assert.Equal(t, http.StatusNotFound, Status("stylist_not_found"))
	assert.Equal(t, http.StatusBadRequest, Status("amount_exceeds_pending"))
}

func TestMessage_NotFoundFallback(t *testing.T) {
	assert.Equal(t, "service collection not found.", Message("service_collection_not_found"))
}

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", ErrBusiness("invalid_amount"))
	assert.True(t, IsBusiness(err, "invalid_amount"))
	assert.False(t, IsBusiness(err, "invalid_discount"))
}

func TestPgErrors(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsExclusionConflict(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23P01"})))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: products.name")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"business", ErrBusiness("break_conflict"), http.StatusConflict, "break_conflict"},
		{"custom message", ErrBusinessMsg("invalid_excel", "bad"), http.StatusBadRequest, "invalid_excel"},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "duplicate_entry"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err, "failed")

			assert.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
