package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/router"
	"github.com/stretchr/testify/require"
)

// requestBody encodes body for a request. Strings and readers are sent as
// they are, everything else as JSON.
func requestBody(t *testing.T, body any) io.Reader {
	switch b := body.(type) {
	case nil:
		return http.NoBody
	case string:
		return bytes.NewBufferString(b)
	case io.Reader:
		return b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err, "request body cannot be encoded as JSON")
		return bytes.NewReader(payload)
	}
}

// engine builds the full router for the API_URL of the test environment.
func engine(t *testing.T) (*gin.Engine, func()) {
	apiURL, ok := os.LookupEnv("API_URL")
	require.True(t, ok, "API_URL must be set")

	base, err := url.Parse(apiURL)
	require.NoError(t, err, "API_URL must be a valid URL")

	r, teardown, err := router.Config(base)
	if err != nil {
		teardown()
		require.FailNow(t, "router setup failed", err.Error())
	}

	router.AttachRoutes(r.Group("/"))
	return r, teardown
}

// Request sends a request through the complete router and returns the
// recorded response.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	r, teardown := engine(t)
	defer teardown()

	req := httptest.NewRequest(method, reqURL, requestBody(t, body))
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return *w
}

// DecodeResponse decodes the JSON body of r into target.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), target)
	require.NoError(t, err, "response %q cannot be decoded into %v, request id %s", r.Body.String(), reflect.TypeOf(target), requestID(r))
}

// AssertHTTPStatus fails the test unless r has one of the expected status codes.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "unexpected status, request id %s, body %s", requestID(r), r.Body.String())
}

func requestID(r *httptest.ResponseRecorder) string {
	return r.Header().Get("x-request-id")
}
