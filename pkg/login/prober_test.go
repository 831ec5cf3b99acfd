package login

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illumination-k/token-helper/pkg/provisioning"
)

func TestProbe_PostsForm(t *testing.T) {
	var gotForm url.Values
	var gotHeaders http.Header
	var gotMethod string

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))

		w.Header().Set("X-Panel-Session", "abc")
		w.Header().Add("Set-Cookie", "a=1")
		w.Header().Add("Set-Cookie", "b=2")
		w.WriteHeader(http.StatusFound)
		_, _ = w.Write([]byte("redirecting"))
	}))
	defer server.Close()

	// Default prober skips certificate verification, so the self-signed test
	// certificate is accepted.
	prober := NewProber(server.URL, nil)

	result, err := prober.Probe(context.Background(), provisioning.ID("42"), "", "")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, UserAgent, gotHeaders.Get("User-Agent"))
	assert.Equal(t, "application/x-www-form-urlencoded", gotHeaders.Get("Content-Type"))

	assert.Equal(t, url.Values{
		"provisioningId": {"42"},
		"dcdjwt":         {""},
		"section":        {"none"},
		"debug":          {"1"},
		"hmr":            {"none"},
		"console":        {"none"},
		"locale":         {"af_AF"},
	}, gotForm)

	assert.Equal(t, http.StatusFound, result.Status)
	assert.Equal(t, "abc", result.Headers["X-Panel-Session"])
	assert.Equal(t, "a=1, b=2", result.Headers["Set-Cookie"])
	assert.Equal(t, "redirecting", result.Body)
}

func TestProbe_CustomSectionAndLocale(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
	}))
	defer server.Close()

	prober := NewProberWithClient(server.URL, server.Client(), nil)
	_, err := prober.Probe(context.Background(), provisioning.ID("PRV-1"), "dns", "es_ES")
	require.NoError(t, err)

	assert.Equal(t, "PRV-1", gotForm.Get("provisioningId"))
	assert.Equal(t, "dns", gotForm.Get("section"))
	assert.Equal(t, "es_ES", gotForm.Get("locale"))
}

func TestProbe_TruncatesLongBody(t *testing.T) {
	long := strings.Repeat("á", MaxBodyLength+500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(long))
	}))
	defer server.Close()

	prober := NewProberWithClient(server.URL, server.Client(), nil)
	result, err := prober.Probe(context.Background(), provisioning.ID("1"), "", "")
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("á", MaxBodyLength)+TruncationMarker, result.Body)
}

func TestProbe_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	prober := NewProberWithClient(serverURL, &http.Client{}, nil)
	_, err := prober.Probe(context.Background(), provisioning.ID("1"), "", "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "login failed:"))
}

func TestProbe_InvalidURL(t *testing.T) {
	prober := NewProberWithClient("://bad", &http.Client{}, nil)
	_, err := prober.Probe(context.Background(), provisioning.ID("1"), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
}

func TestTruncateBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "under limit", body: "short", want: "short"},
		{name: "exactly at limit", body: strings.Repeat("x", MaxBodyLength), want: strings.Repeat("x", MaxBodyLength)},
		{name: "one over limit", body: strings.Repeat("x", MaxBodyLength+1), want: strings.Repeat("x", MaxBodyLength) + TruncationMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateBody(tt.body))
		})
	}
}

func TestResult_Format(t *testing.T) {
	r := &Result{
		Status:  200,
		Headers: map[string]string{"Server": "nginx", "Content-Type": "text/html"},
		Body:    "<p>ok</p>",
	}

	assert.Equal(t,
		"STATUS: 200\n\nHEADERS:\nContent-Type: text/html\nServer: nginx\n\nBODY:\n<p>ok</p>",
		r.Format())
}

func TestDecodeUTF8(t *testing.T) {
	assert.Equal(t, "a�b", decodeUTF8([]byte{'a', 0xff, 'b'}))
}
