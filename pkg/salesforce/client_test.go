package salesforce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gosf "github.com/k-capehart/go-salesforce/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSFClient(t *testing.T, handler http.Handler, opts ...ClientOption) (Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)

	sf, err := gosf.Init(gosf.Creds{
		AccessToken: "test-token",
		Domain:      ts.URL,
	},
		gosf.WithValidateAuthentication(false),
		gosf.WithRoundTripper(http.DefaultTransport),
	)
	require.NoError(t, err)

	return NewClient(sf, opts...), ts
}

func TestSFClient_QueryContacts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/query")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalSize": 1,
			"done":      true,
			"records": []map[string]any{
				{
					"attributes":       map[string]any{"type": "Contact"},
					"Id":               "003xx",
					"FirstName":        "Ada",
					"LastName":         "Lovelace",
					"Email":            "ada@acme.de",
					"LastActivityDate": "2024-11-02",
				},
			},
		})
	})

	client, ts := newTestSFClient(t, handler, WithRateLimit(50))
	defer ts.Close()

	contacts, err := FindContactsByEmail(context.Background(), client, "ada@acme.de")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "003xx", contacts[0].ID)
	assert.Equal(t, "2024-11-02", contacts[0].LastActivityDate)
}

func TestSFClient_QueryError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"message": "invalid SOQL", "errorCode": "MALFORMED_QUERY"},
		})
	})

	client, ts := newTestSFClient(t, handler)
	defer ts.Close()

	var accounts []Account
	err := client.Query(context.Background(), "INVALID SOQL", &accounts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sf: query")
}

func TestDial_RequiresClientID(t *testing.T) {
	_, err := Dial(Creds{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client ID is required")
}

func TestDial_MissingKeyFile(t *testing.T) {
	_, err := Dial(Creds{ClientID: "abc", KeyPath: "/nonexistent/key.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read JWT private key")
}

func TestSFClient_RateLimitCancelled(t *testing.T) {
	client, ts := newTestSFClient(t, http.NotFoundHandler(), WithRateLimit(0.001))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out []Contact
	err := client.Query(ctx, "SELECT Id FROM Contact", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
