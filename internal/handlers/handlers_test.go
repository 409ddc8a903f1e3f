package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-pos/internal/models"
	"github.com/BruksfildServices01/salon-pos/internal/testutil"
	"github.com/BruksfildServices01/salon-pos/internal/usecase/inventory"
	"github.com/BruksfildServices01/salon-pos/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

// ======================================================
// REGISTER
// ======================================================

func registerBody(slug, email string) map[string]any {
	return map[string]any{
		"salon_name":     "Glow Studio",
		"salon_slug":     slug,
		"salon_timezone": "Asia/Kolkata",
		"name":           "Asha",
		"email":          email,
		"password":       "secret123",
	}
}

func TestRegister(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewAuthHandler(db, "test-secret")
	h.checkEmail = func(context.Context, string) error { return nil }

	r := gin.New()
	r.POST("/register", h.Register)

	w := postJSON(r, "/register", registerBody("Glow", "Asha@Example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "glow", res.Salon.Slug)
	assert.Equal(t, "asha@example.com", res.User.Email)
	assert.Equal(t, "owner", res.User.Role)
	assert.Equal(t, res.Salon.ID, res.User.SalonID)

	tok, err := jwt.Parse(res.Token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.EqualValues(t, res.User.ID, claims["sub"])
	assert.EqualValues(t, res.Salon.ID, claims["salonId"])

	var owner models.User
	require.NoError(t, db.First(&owner, res.User.ID).Error)
	assert.NotEqual(t, "secret123", owner.PasswordHash)

	t.Run("slug taken", func(t *testing.T) {
		w := postJSON(r, "/register", registerBody("glow", "other@example.com"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "slug_already_used", errorCode(t, w))
	})

	t.Run("email taken", func(t *testing.T) {
		w := postJSON(r, "/register", registerBody("glow-two", "asha@example.com"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "email_already_used", errorCode(t, w))
	})

	t.Run("unknown timezone", func(t *testing.T) {
		body := registerBody("glow-three", "three@example.com")
		body["salon_timezone"] = "Mars/Olympus"
		w := postJSON(r, "/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_timezone", errorCode(t, w))
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(r, "/register", map[string]any{"salon_name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_request", errorCode(t, w))
	})

	var salons int64
	require.NoError(t, db.Model(&models.Salon{}).Count(&salons).Error)
	assert.EqualValues(t, 1, salons)
}

func TestRegister_RejectsDeadEmailDomain(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewAuthHandler(db, "test-secret")
	h.checkEmail = func(context.Context, string) error { return validators.ErrEmailDomain }

	r := gin.New()
	r.POST("/register", h.Register)

	w := postJSON(r, "/register", registerBody("glow", "asha@nowhere.invalid"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", errorCode(t, w))
}

// ======================================================
// STOCK SHEET UPLOAD
// ======================================================

func upload(t *testing.T, r http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stockWorkbook(t *testing.T, sheet string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := [][]any{
		{"PURCHASE - STOCK IN"},
		{"Date", "Product Name", "HSN Code", "Units", "Invoice No.", "Qty."},
		{"2026-03-01", "Serum", "3305", "BTL-BOTTLES", "INV-1", 2, 500},
		{"SALES TO CUSTOMER - STOCK OUT"},
		{"Date", "Product Name"},
		{"SALON CONSUMPTION - STOCK OUT"},
		{"Date", "Product Name"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestInventoryParse(t *testing.T) {
	h := NewInventoryHandler(nil, 1<<20)
	r := gin.New()
	r.POST("/parse", h.Parse)

	t.Run("stock sheet", func(t *testing.T) {
		w := upload(t, r, "stock.xlsx", stockWorkbook(t, inventory.SheetName))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var sheet inventory.StockSheet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sheet))
		require.Len(t, sheet.Purchases, 1)
		assert.Equal(t, "Serum", sheet.Purchases[0].ProductName)
		assert.Equal(t, "BTL", sheet.Purchases[0].Units)
		assert.Empty(t, sheet.Sales)
	})

	t.Run("wrong extension", func(t *testing.T) {
		w := upload(t, r, "stock.csv", []byte("a,b"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_file_type", errorCode(t, w))
	})

	t.Run("missing sheet", func(t *testing.T) {
		w := upload(t, r, "stock.xlsx", stockWorkbook(t, "Inventory"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing_stock_sheet", errorCode(t, w))
	})

	t.Run("unreadable workbook", func(t *testing.T) {
		w := upload(t, r, "stock.xls", []byte("not a zip"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error processing Excel file")
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing_file", errorCode(t, w))
	})
}
