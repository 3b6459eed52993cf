//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d", expectedStatus, w.Code))

	var errorResponse struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedErrorMsg != "" {
		assert.Contains(t, errorResponse.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertFieldErrors checks a 422 validation body and the order of its field errors.
func AssertFieldErrors(t *testing.T, w *httptest.ResponseRecorder, fields ...string) {
	t.Helper()
	AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Validation failed")

	var body struct {
		Detail struct {
			Errors []struct {
				Field string `json:"field"`
			} `json:"errors"`
		} `json:"detail"`
	}
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) {
		return
	}
	got := make([]string, 0, len(body.Detail.Errors))
	for _, fe := range body.Detail.Errors {
		got = append(got, fe.Field)
	}
	assert.Equal(t, fields, got)
}
