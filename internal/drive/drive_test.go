package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/teachdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func liveConfig() config.DriveConfig {
	return config.DriveConfig{APIKey: "api-key", ClientID: "client-id", ClientSecret: "secret", RedirectURL: "urn:ietf:wg:oauth:2.0:oob"}
}

func liveClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithToken(&oauth2.Token{AccessToken: "tok", TokenType: "Bearer"}),
	}
	return New(liveConfig(), append(base, opts...)...)
}

func writeFiles(w http.ResponseWriter, files ...map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"files": files})
}

func TestSignIn_WithoutCredentialsUsesDemo(t *testing.T) {
	c := New(config.DriveConfig{})

	require.NoError(t, c.SignIn(context.Background()))

	st := c.Status()
	assert.True(t, st.SignedIn)
	assert.True(t, st.Demo)
	assert.Contains(t, st.Error, ErrNotConfigured.Error())
	assert.Equal(t, demoInFolder(""), st.Files)
}

func TestDemoOperations_AreDeterministic(t *testing.T) {
	c := New(config.DriveConfig{})
	ctx := context.Background()

	first, err := c.LoadFiles(ctx, "")
	require.NoError(t, err)
	second, err := c.LoadFiles(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)

	nested, err := c.LoadFiles(ctx, "demo-lesson-plans")
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "demo-week1", nested[0].ID)

	found, err := c.SearchFiles(ctx, "SYLLABUS")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "demo-syllabus", found[0].ID)

	link, err := c.CreateShareableLink(ctx, "demo-gradebook")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/file/d/demo-gradebook/view", link)

	st := c.Status()
	assert.True(t, st.Demo)
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.Error)
}

func TestLoadFiles_Live(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "api-key", r.URL.Query().Get("key"))
		assert.Equal(t, "'folder-1' in parents and trashed=false", r.URL.Query().Get("q"))
		assert.Equal(t, "folder,modifiedTime desc", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "100", r.URL.Query().Get("pageSize"))
		assert.Contains(t, r.URL.Query().Get("fields"), "webViewLink")
		writeFiles(w, map[string]any{
			"id": "f1", "name": "Quiz 3.pdf", "mimeType": "application/pdf", "size": "2048",
			"modifiedTime": "2024-02-01T10:00:00Z", "webViewLink": "https://drive.example/f1",
		})
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	c := liveClient(t, srv)
	files, err := c.LoadFiles(context.Background(), "folder-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Quiz 3.pdf", files[0].Name)
	assert.Equal(t, int64(2048), files[0].Size)
	assert.Equal(t, 2024, files[0].ModifiedTime.Year())

	st := c.Status()
	assert.False(t, st.Demo)
	assert.Empty(t, st.Error)
	assert.Equal(t, files, st.Files)
}

func TestSearchFiles_EscapesQuery(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `name contains 'O\'Neil' and trashed=false`, r.URL.Query().Get("q"))
		writeFiles(w)
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	files, err := liveClient(t, srv).SearchFiles(context.Background(), "O'Neil")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLoadFiles_ServerErrorFallsBackToDemo(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	c := liveClient(t, srv)
	files, err := c.LoadFiles(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, demoInFolder(""), files)

	st := c.Status()
	assert.True(t, st.Demo)
	assert.Contains(t, st.Error, "403")
	assert.Contains(t, st.Error, "quota exceeded")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 404, statusCode(fmt.Errorf("fetch link: %w", &googleapi.Error{Code: 404})))
	assert.Equal(t, 0, statusCode(errors.New("dial tcp: refused")))
}

func TestLoadFiles_StaleResponseIsDropped(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("q"), "'slow'") {
			close(arrived)
			<-release
			writeFiles(w, map[string]any{"id": "old", "name": "old.pdf"})
			return
		}
		writeFiles(w, map[string]any{"id": "new", "name": "new.pdf"})
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	c := liveClient(t, srv)
	done := make(chan []File)
	go func() {
		files, _ := c.LoadFiles(context.Background(), "slow")
		done <- files
	}()

	<-arrived
	fresh, err := c.LoadFiles(context.Background(), "fast")
	require.NoError(t, err)
	close(release)
	stale := <-done

	require.Len(t, stale, 1)
	assert.Equal(t, "old", stale[0].ID)
	st := c.Status()
	assert.Equal(t, fresh, st.Files)
	assert.Equal(t, "new", st.Files[0].ID)
}

func TestSignIn_ExchangesCode(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	var shownURL string
	c := New(liveConfig(),
		WithHTTPClient(srv.Client()),
		WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams}),
		WithAuthorizer(func(_ context.Context, authURL string) (string, error) {
			shownURL = authURL
			return " the-code\n", nil
		}),
	)

	require.NoError(t, c.SignIn(context.Background()))
	assert.Contains(t, shownURL, "client_id=client-id")
	assert.Contains(t, shownURL, "drive.readonly")

	st := c.Status()
	assert.True(t, st.SignedIn)
	assert.False(t, st.Demo)
	assert.Empty(t, st.Error)
}

func TestSignIn_AuthorizerFailureUsesDemo(t *testing.T) {
	c := New(liveConfig(), WithAuthorizer(func(context.Context, string) (string, error) {
		return "", errors.New("user closed the prompt")
	}))

	require.NoError(t, c.SignIn(context.Background()))
	st := c.Status()
	assert.True(t, st.Demo)
	assert.Contains(t, st.Error, "user closed the prompt")
}

func TestSignIn_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New(liveConfig(), WithAuthorizer(func(ctx context.Context, _ string) (string, error) {
		cancel()
		return "", ctx.Err()
	}))

	err := c.SignIn(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateShareableLink_Live(t *testing.T) {
	var granted bool
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/files/f1/permissions":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "anyone", body["type"])
			assert.Equal(t, "reader", body["role"])
			granted = true
			_, _ = w.Write([]byte(`{"id":"perm"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/files/f1":
			_, _ = w.Write([]byte(`{"webViewLink":"https://drive.example/f1/view"}`))
		default:
			http.NotFound(w, r)
		}
	})
	if srv == nil {
		return
	}
	defer srv.Close()

	link, err := liveClient(t, srv).CreateShareableLink(context.Background(), "f1")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, "https://drive.example/f1/view", link)
}

func TestSignOut_ClearsState(t *testing.T) {
	c := New(config.DriveConfig{})
	require.NoError(t, c.SignIn(context.Background()))

	c.SignOut()
	assert.Equal(t, Status{}, c.Status())
}
