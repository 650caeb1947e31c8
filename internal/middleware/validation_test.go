package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test struct with validation tags
type testRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Quantity *int   `json:"quantity" validate:"required,gte=0,lte=100"`
}

func decode(t *testing.T, body string) (*testRequest, error) {
	t.Helper()
	req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var testReq testRequest
	err := DecodeAndValidate(req, &testReq)
	return &testReq, err
}

// Feature: product-catalog, Property 10: Required field validation works
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeQuantity bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "蛍光ペン"
			}
			if includeQuantity {
				reqMap["quantity"] = 0
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testRequest
			err := DecodeAndValidate(req, &testReq)

			if includeName && includeQuantity {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_QuantityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity outside valid range is rejected", prop.ForAll(
		func(quantity int) bool {
			reqBody, _ := json.Marshal(map[string]interface{}{
				"name":     "蛍光ペン",
				"quantity": quantity,
			})
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))

			var testReq testRequest
			err := DecodeAndValidate(req, &testReq)

			if quantity >= 0 && quantity <= 100 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-100, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	_, err := decode(t, `{"name":"   ","quantity":101}`)
	require.Error(t, err)

	validationErrors := FormatValidationErrors(err)
	require.Len(t, validationErrors, 2)
	assert.Equal(t, ValidationError{Field: "name", Message: "This field must not be blank"}, validationErrors[0])
	assert.Equal(t, ValidationError{Field: "quantity", Message: "Value must be less than or equal to 100"}, validationErrors[1])
}

func TestDecodeRejectsMalformedBodies(t *testing.T) {
	for _, body := range []string{
		`{"name":"a","quantity":1,"extra":true}`,
		`{"name":"a","quantity":"1"}`,
		`{"name":"a","quantity":1}{}`,
		`not json`,
	} {
		_, err := decode(t, body)

		var malformed *MalformedBodyError
		assert.True(t, errors.As(err, &malformed), "body %s", body)
		assert.Empty(t, FormatValidationErrors(err))
	}
}

func TestDecodeAcceptsZeroQuantity(t *testing.T) {
	req, err := decode(t, `{"name":"a","quantity":0}`)
	require.NoError(t, err)
	assert.Equal(t, 0, *req.Quantity)
}
