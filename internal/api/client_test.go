package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/jask/idcard/internal/logging"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second, logging.Discard())
}

func TestLoginSendsJSONCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/credentials", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, Credentials{Username: "ada", Password: "pw"}, got)

		_, _ = w.Write([]byte(`{"token":"abc"}`))
	})

	token, err := c.Login(context.Background(), Credentials{Username: "ada", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "abc", token)
}

func TestLoginRejectsBadTokenShapes(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"token":""}`,
		`{"token":42}`,
		`{"token":null}`,
		`{"token":{"v":"abc"}}`,
		`{"message":"invalid credentials"}`,
		`null`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
			require.ErrorIs(t, err, ErrInvalidCredentials)
			require.Equal(t, "Incorrect credentials provided", err.Error())
		})
	}
}

func TestLoginReadsBodyRegardlessOfStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	})
	_, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
	require.Contains(t, err.Error(), "decode /credentials response")
}

func TestLoginNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, logging.Discard())
	_, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "POST /credentials")
}

func TestFetchUserSendsRawAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/user", r.URL.Path)
		require.Equal(t, "abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"uuid":"8c1f6bd0-2a1e-4c53-9a55-0b5d2f1e9a10",
			"image":"https://img.example.com/ada.png",
			"firstName":"Ada",
			"lastName":"Lovelace",
			"address":"12 St James's Square",
			"phone":"+44 20 7946 0000",
			"extra":true
		}`))
	})

	u, err := c.FetchUser(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", u.FullName())
	require.Equal(t, "12 St James's Square", u.Address)
	require.Equal(t, "+44 20 7946 0000", u.Phone)
	require.Equal(t, "https://img.example.com/ada.png", u.Image)
	require.Equal(t, "8c1f6bd0", u.ShortID())
}

func TestFetchUserEmptyObjectIsUnauthenticated(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.FetchUser(context.Background(), "stale")
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Equal(t, "Incorrect authentication header", err.Error())
	require.Equal(t, int32(1), hits.Load())
}

func TestFetchUserKeepsNonStringFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"firstName":"Ada","lastName":null,"phone":5551234,"address":true}`))
	})
	u, err := c.FetchUser(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "Ada", u.FirstName)
	require.Equal(t, "", u.LastName)
	require.Equal(t, "5551234", u.Phone)
	require.Equal(t, "true", u.Address)
}

func TestLoginDoesNotLogCredentials(t *testing.T) {
	var buf bytes.Buffer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, 2*time.Second, logging.New(&buf, "", log.DebugLevel))

	_, err := c.Login(context.Background(), Credentials{Username: "secret-user", Password: "secret-pass"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "login ok")
	require.NotContains(t, buf.String(), "secret-user")
	require.NotContains(t, buf.String(), "secret-pass")
}

func TestNewWithoutLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, time.Second, nil)

	_, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = c.FetchUser(context.Background(), "abc")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCredentialsEmpty(t *testing.T) {
	require.True(t, Credentials{}.Empty())
	require.True(t, Credentials{Username: "a"}.Empty())
	require.True(t, Credentials{Password: "b"}.Empty())
	require.False(t, Credentials{Username: " ", Password: " "}.Empty())
}

func TestShortIDFallsBackToRaw(t *testing.T) {
	require.Equal(t, "user-7", UserData{UUID: "user-7"}.ShortID())
}
