package syno

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client pointing at the given httptest server.
func newTestClient(t *testing.T, serverURL, sid string) *Client {
	t.Helper()

	return NewClient(serverURL, sid, http.DefaultClient, slog.Default())
}

func TestGet_InjectsCommonParams(t *testing.T) {
	var gotQuery url.Values
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":3}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sid-123")

	var data countData
	err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2,
		url.Values{"extra": {"yes"}}, &data)
	require.NoError(t, err)

	assert.Equal(t, "/webapi/entry.cgi", gotPath)
	assert.Equal(t, "SYNO.Foto.Browse.Album", gotQuery.Get("api"))
	assert.Equal(t, "count", gotQuery.Get("method"))
	assert.Equal(t, "2", gotQuery.Get("version"))
	assert.Equal(t, "sid-123", gotQuery.Get("_sid"))
	assert.Equal(t, "yes", gotQuery.Get("extra"))
	assert.Equal(t, 3, data.Count)
}

func TestGet_OmitsSidWhenEmpty(t *testing.T) {
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":0}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	var data countData
	require.NoError(t, c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data))

	_, present := gotQuery["_sid"]
	assert.False(t, present)
}

func TestGet_TrimsTrailingSlashInBaseURL(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/", "")

	var data struct{}
	require.NoError(t, c.get(context.Background(), "SYNO.Foto.Setting.User", "get", 1, nil, &data))
	assert.Equal(t, "/webapi/entry.cgi", gotPath)
}

func TestPost_FormEncodesParams(t *testing.T) {
	var gotForm url.Values
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"success":true,"data":{"folder":{"id":7,"name":"/Trips"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sid-9")

	folder, err := c.CreateFolder(context.Background(), "Trips", 1)
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "SYNO.Foto.Browse.Folder", gotForm.Get("api"))
	assert.Equal(t, "create", gotForm.Get("method"))
	assert.Equal(t, "sid-9", gotForm.Get("_sid"))
	assert.Equal(t, "Trips", gotForm.Get("name"))
	assert.Equal(t, "1", gotForm.Get("target_id"))
	assert.Equal(t, 7, folder.ID)
	assert.Equal(t, "/Trips", folder.Name)
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	var data countData
	err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "syno: Bad Gateway", httpErr.Error())
}

func TestDo_APIErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		sentinel error
	}{
		{"otp required", 403, ErrOTPRequired},
		{"otp enforced", 406, ErrOTPEnforced},
		{"invalid credentials", 400, ErrInvalidCredentials},
		{"no access or not found", 642, ErrNoAccessOrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success":false,"error":{"code":` +
					strconv.Itoa(tt.code) + `}}`))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, "")

			var data countData
			err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestDo_UnknownAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":999}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	var data countData
	err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 999, apiErr.Code)
	assert.False(t, errors.Is(err, ErrNoAccessOrNotFound))
	assert.Contains(t, err.Error(), "999")
}

func TestDo_SuccessfulEnvelopeMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	var data countData
	err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data")
}

func TestDo_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	var data countData
	err := c.get(context.Background(), "SYNO.Foto.Browse.Album", "count", 2, nil, &data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "[1,2,3]", joinIDs([]int{1, 2, 3}))
	assert.Equal(t, "[42]", joinIDs([]int{42}))
	assert.Equal(t, "[]", joinIDs(nil))
}
