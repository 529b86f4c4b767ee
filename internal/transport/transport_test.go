package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	tr := NewTransport(0)
	assert.Equal(DefaultIdleTimeout, tr.ResponseHeaderTimeout)
	assert.Equal(DefaultIdleTimeout/2, tr.IdleConnTimeout)
	assert.Equal(DefaultTLSHandshakeTimeout, tr.TLSHandshakeTimeout)

	tr = NewTransport(time.Second)
	assert.Equal(time.Second, tr.ResponseHeaderTimeout)
	assert.Equal(time.Second, tr.TLSHandshakeTimeout)
}

// A server that keeps trickling bytes outlives the idle timeout in total time.
func TestSteadyResponseSurvives(t *testing.T) {
	assert := assert.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, "chunk%d;", i)
			flusher.Flush()
			time.Sleep(40 * time.Millisecond)
		}
	}))
	defer ts.Close()

	client := NewHTTPClient(250 * time.Millisecond)
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assert.NoError(err)
	assert.Equal(10, strings.Count(string(body), ";"))
}

func TestStalledBodyTimesOut(t *testing.T) {
	assert := assert.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "partial")
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer ts.Close()

	client := NewHTTPClient(150 * time.Millisecond)
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	_, err = io.ReadAll(resp.Body)
	require.Error(t, err)

	var netErr net.Error
	assert.True(errors.As(err, &netErr))
	assert.True(netErr.Timeout())
}

func TestSilentServerTimesOut(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer ts.Close()

	client := NewHTTPClient(150 * time.Millisecond)
	start := time.Now()
	_, err := client.Get(ts.URL)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
