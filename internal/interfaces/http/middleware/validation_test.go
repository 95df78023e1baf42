package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type recordInput struct {
		TypeCode string `json:"type_code" binding:"required"`
		Amount   string `json:"amount" binding:"required,numeric"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/payments", func(c *gin.Context) {
		var input recordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("expands field errors with json names", func(t *testing.T) {
		body := strings.NewReader(`{"amount": "not-a-number"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "type_code")
		assert.Contains(t, fields, "amount")
	})

	t.Run("malformed json yields no field details", func(t *testing.T) {
		body := strings.NewReader(`{"type_code":`)
		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid input passes through", func(t *testing.T) {
		body := strings.NewReader(`{"type_code": "RENT", "amount": "45000"}`)
		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		OneOf    string `validate:"oneof=asc desc"`
		GTE      int    `validate:"gte=1"`
	}

	v := validator.New()
	err := v.Struct(input{Min: "ab", OneOf: "up"})
	require.Error(t, err)

	expected := map[string]string{
		"Required": "This field is required",
		"Min":      "Must be at least 5 characters",
		"OneOf":    "Must be one of: asc desc",
		"GTE":      "Must be greater than or equal to 1",
	}

	validationErrs := err.(validator.ValidationErrors)
	for _, e := range validationErrs {
		if want, ok := expected[e.StructField()]; ok {
			assert.Equal(t, want, getValidationMessage(e))
		}
	}
}
