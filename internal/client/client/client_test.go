package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, respBody string, headers map[string]string) (*HTTPClient, *recorded) {
	t.Helper()
	rec := &recorded{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", time.Second), rec
}

func TestRegister(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"id":"1","email":"a@b.com"}`, nil)

	u, err := c.Register(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "1", Email: "a@b.com"}, u)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/users", rec.path)
	assert.Equal(t, "a@b.com", rec.body["email"])
	assert.Equal(t, "pw", rec.body["password"])
}

func TestRegister_APIError(t *testing.T) {
	c, _ := newServer(t, http.StatusBadRequest, `{"error":"Already exist"}`, nil)

	_, err := c.Register(context.Background(), "a@b.com", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Already exist", apiErr.Message)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestConnect_SendsBasicAndKeepsToken(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"token":"tok"}`, nil)

	tok, err := c.Connect(context.Background(), "a@b.com", "p:w")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, "tok", c.Token())

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("a@b.com:p:w"))
	assert.Equal(t, want, rec.header.Get("Authorization"))
	assert.Empty(t, rec.header.Get("X-Token"))
}

func TestConnect_Unauthorized(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, `{"error":"Unauthorized"}`, nil)

	_, err := c.Connect(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}

func TestDisconnect_ClearsToken(t *testing.T) {
	c, rec := newServer(t, http.StatusNoContent, "", nil)
	c.SetToken("tok")

	require.NoError(t, c.Disconnect(context.Background()))
	assert.Equal(t, "tok", rec.header.Get("X-Token"))
	assert.Empty(t, c.Token())
}

func TestCreateFile_EncodesData(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"id":"5","userId":"1","name":"a.txt","type":"file","isPublic":true,"parentId":"3"}`, nil)
	c.SetToken("tok")

	f, err := c.CreateFile(context.Background(), NewFile{Name: "a.txt", Type: "file", Data: []byte("hi"), ParentID: "3", IsPublic: true})
	require.NoError(t, err)

	assert.Equal(t, ParentID("3"), f.ParentID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hi")), rec.body["data"])
	assert.Equal(t, "3", rec.body["parentId"])
	assert.Equal(t, true, rec.body["isPublic"])
	assert.Equal(t, "tok", rec.header.Get("X-Token"))
}

func TestCreateFile_FolderHasNoData(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"id":"5","userId":"1","name":"d","type":"folder","isPublic":false,"parentId":0}`, nil)

	f, err := c.CreateFile(context.Background(), NewFile{Name: "d", Type: "folder"})
	require.NoError(t, err)

	assert.Equal(t, ParentID("0"), f.ParentID)
	assert.NotContains(t, rec.body, "data")
	assert.NotContains(t, rec.body, "parentId")
}

func TestListFiles_Query(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[{"id":"1","parentId":0},{"id":"2","parentId":"1"}]`, nil)

	list, err := c.ListFiles(context.Background(), "1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ParentID("0"), list[0].ParentID)
	assert.Equal(t, "page=2&parentId=1", rec.query)
}

func TestListFiles_RootWithoutQuery(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[]`, nil)

	list, err := c.ListFiles(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Empty(t, rec.query)
}

func TestSetPublish_Paths(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"id":"7","isPublic":true,"parentId":0}`, nil)

	_, err := c.SetPublish(context.Background(), "7", true)
	require.NoError(t, err)
	assert.Equal(t, "/files/7/publish", rec.path)
	assert.Equal(t, http.MethodPut, rec.method)

	_, err = c.SetPublish(context.Background(), "7", false)
	require.NoError(t, err)
	assert.Equal(t, "/files/7/unpublish", rec.path)
}

func TestDownload(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "raw bytes", map[string]string{"Content-Type": "text/plain; charset=utf-8"})

	data, ct, err := c.Download(context.Background(), "9", 250)
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", string(data))
	assert.Equal(t, "text/plain; charset=utf-8", ct)
	assert.Equal(t, "size=250", rec.query)
	assert.Empty(t, rec.header.Get("X-Token"), "anonymous download sends no token")
}

func TestDownload_NotFound(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"error":"Not found"}`, nil)

	_, _, err := c.Download(context.Background(), "9", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatus(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"redis":true,"db":false}`, nil)

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Status{Redis: true, DB: false}, st)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.Status(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAPIError_FallsBackToStatusLine(t *testing.T) {
	c, _ := newServer(t, http.StatusBadGateway, "<html>", nil)

	_, err := c.Status(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "502 Bad Gateway", apiErr.Message)
}
