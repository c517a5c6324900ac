package zenodo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("hello world\n"))
	}))
	defer srv.Close()

	c := fastClient(srv, "")
	data, err := c.Fetch(context.Background(), domain.FileLink{
		URL:      srv.URL + "/files/abvd.zip",
		Checksum: "md5:6f5902ac237024bdd0c176cb93063dc4",
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("hello world\n"), data)
}

func TestFetch_ChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	c := fastClient(srv, "")
	_, err := c.Fetch(context.Background(), domain.FileLink{
		URL:      srv.URL + "/files/abvd.zip",
		Checksum: "md5:6f5902ac237024bdd0c176cb93063dc4",
	})

	assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
}

func TestFetch_RetriesAfterRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			// An already-elapsed window keeps the test instant.
			w.Header().Set(HeaderRetryAfter, "0")
			w.Header().Set(HeaderRateReset, fmt.Sprintf("%d", time.Now().Add(-time.Minute).Unix()))
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("hello world\n"))
	}))
	defer srv.Close()

	c := fastClient(srv, "")
	data, err := c.Fetch(context.Background(), domain.FileLink{
		URL:      srv.URL + "/files/abvd.zip",
		Checksum: "md5:6f5902ac237024bdd0c176cb93063dc4",
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("hello world\n"), data)
	assert.Equal(t, 2, calls)
}

func TestFetch_GivesUpAfterRepeatedFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := fastClient(srv, "")
	_, err := c.Fetch(context.Background(), domain.FileLink{URL: srv.URL + "/files/x.zip"})

	assert.ErrorIs(t, err, domain.ErrGaveUp)
	assert.Equal(t, MaxAttempts, calls)
}
