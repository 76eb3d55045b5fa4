package vbz_client

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/test_helpers"
)

const triasRequest = `<?xml version="1.0" encoding="UTF-8"?><Trias version="1.1"></Trias>`
const triasResponse = `<?xml version="1.0" encoding="UTF-8"?><Trias version="1.1"><ServiceDelivery/></Trias>`

func testClient(url string, key string) *VbzClient {
	return &VbzClient{
		Client: &http.Client{
			Timeout: time.Second,
		},
		Logger: dlog.NewLogger([]dlog.LoggerOption{
			dlog.LoggerSetOutput(ioutil.Discard),
		}...),
		VbzURL:    url,
		VbzAPIKey: key,
	}
}

func Test_VbzClient_Request(t *testing.T) {
	t.Run("should POST the body with bearer auth and identifying headers", func(t *testing.T) {
		var gotMethod, gotAuth, gotContentType, gotUserAgent, gotBody string

		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotUserAgent = r.Header.Get("User-Agent")
			body, _ := ioutil.ReadAll(r.Body)
			gotBody = string(body)
			w.Write([]byte(triasResponse))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")

		body, err := client.Request(context.Background(), triasRequest)
		if err != nil {
			t.Fatalf("request failed: %s", err)
		}

		test_helpers.AssertString(t, gotMethod, http.MethodPost)
		test_helpers.AssertString(t, gotAuth, "Bearer abc123abc123abc123")
		test_helpers.AssertString(t, gotContentType, "application/xml")
		test_helpers.AssertString(t, gotUserAgent, DefaultUserAgent)
		test_helpers.AssertString(t, gotBody, triasRequest)
		test_helpers.AssertString(t, string(body), triasResponse)
	})

	t.Run("should not double the bearer prefix when the key already carries it", func(t *testing.T) {
		var gotAuth string

		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(triasResponse))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "Bearer abc123abc123abc123")

		if _, err := client.Request(context.Background(), triasRequest); err != nil {
			t.Fatalf("request failed: %s", err)
		}

		test_helpers.AssertString(t, gotAuth, "Bearer abc123abc123abc123")
	})

	t.Run("should use a custom user agent when configured", func(t *testing.T) {
		var gotUserAgent string

		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserAgent = r.Header.Get("User-Agent")
			w.Write([]byte(triasResponse))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")
		client.UserAgent = "departure-board/2.0"

		if _, err := client.Request(context.Background(), triasRequest); err != nil {
			t.Fatalf("request failed: %s", err)
		}

		test_helpers.AssertString(t, gotUserAgent, "departure-board/2.0")
	})

	t.Run("should classify a non-success status as an API error carrying the status code", func(t *testing.T) {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Access denied for the supplied key"))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")

		_, err := client.Request(context.Background(), triasRequest)
		if err == nil {
			t.Fatal("expected an error for a 401 response")
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %s", err, err)
		}

		test_helpers.AssertInt(t, apiErr.StatusCode, http.StatusUnauthorized)
		test_helpers.AssertString(t, apiErr.Body, "Access denied for the supplied key")
		test_helpers.AssertBoolean(t, strings.Contains(apiErr.Error(), "401"), true)
	})

	t.Run("should truncate a long diagnostic body", func(t *testing.T) {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(strings.Repeat("x", 2048)))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")

		_, err := client.Request(context.Background(), triasRequest)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %s", err, err)
		}

		test_helpers.AssertInt(t, len(apiErr.Body), maxDiagnosticBodyLen)
	})

	t.Run("should classify an unreachable endpoint as a transport error", func(t *testing.T) {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")

		_, err := client.Request(context.Background(), triasRequest)
		if err == nil {
			t.Fatal("expected an error for a closed endpoint")
		}

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T: %s", err, err)
		}
	})

	t.Run("should classify a timeout as a transport error", func(t *testing.T) {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")
		client.Client.Timeout = 20 * time.Millisecond

		_, err := client.Request(context.Background(), triasRequest)
		if err == nil {
			t.Fatal("expected an error for a timed-out request")
		}

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T: %s", err, err)
		}
	})

	t.Run("should work without a logger", func(t *testing.T) {
		stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(triasResponse))
		}))
		defer stub.Close()

		client := testClient(stub.URL, "abc123abc123abc123")
		client.Logger = nil

		if _, err := client.Request(context.Background(), triasRequest); err != nil {
			t.Fatalf("request failed: %s", err)
		}
	})
}

func Test_PlausibleAPIKey(t *testing.T) {
	t.Run("should accept a realistic key", func(t *testing.T) {
		test_helpers.AssertBoolean(t, PlausibleAPIKey("eyJvcmciOiI2NDA2NTFhNTIyZmEwNTAwMDEyOWJiZTEi"), true)
	})

	t.Run("should accept a realistic key with the scheme prefix", func(t *testing.T) {
		test_helpers.AssertBoolean(t, PlausibleAPIKey("Bearer eyJvcmciOiI2NDA2NTFhNTIyZmEwNTAwMDEyOWJiZTEi"), true)
	})

	t.Run("should reject a suspiciously short key", func(t *testing.T) {
		test_helpers.AssertBoolean(t, PlausibleAPIKey("abc123"), false)
	})

	t.Run("should reject whitespace padding around nothing", func(t *testing.T) {
		test_helpers.AssertBoolean(t, PlausibleAPIKey("Bearer    "), false)
	})
}
