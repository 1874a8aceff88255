package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"postfeed/app/datefmt"
	"postfeed/app/middleware"
	"postfeed/app/models"
	"postfeed/app/repositories"
	"postfeed/app/services"
	"postfeed/app/views"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *mux.Router {
	return setupTestRouterWithLog(t, zerolog.Nop())
}

func setupTestRouterWithLog(t *testing.T, log zerolog.Logger) *mux.Router {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "post.css"), []byte("body { background: #121214; }"), 0644))

	db, err := repositories.OpenStore(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	postRepo, err := repositories.LoadCatalogFile("")
	require.NoError(t, err)
	instanceRepo := repositories.NewBadgerInstanceRepository(db, time.Hour)

	commentService, err := services.NewCommentService(instanceRepo, postRepo, models.SeedComment, zerolog.Nop())
	require.NoError(t, err)
	renderer, err := views.NewRenderer(nil)
	require.NoError(t, err)

	return SetupRoutes(Deps{
		PostService:    services.NewPostService(postRepo),
		CommentService: commentService,
		Renderer:       renderer,
		Formatter:      datefmt.New(time.UTC, nil),
		StaticDir:      staticDir,
		Log:            log,
	})
}

func TestWebRoutes(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/", "/posts"} {
		t.Run("GET "+path+" lists posts", func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `href="/posts/diego-portfolio"`)
			assert.Contains(t, w.Body.String(), `href="/posts/mayk-novidades"`)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}

	t.Run("comment round trip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts/diego-portfolio", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<p data-key="jane.design/doctorcare"><a href="#">jane.design/doctorcare</a></p>`)

		const marker = `data-instance="`
		body := w.Body.String()
		start := strings.Index(body, marker)
		require.NotEqual(t, -1, start)
		id := body[start+len(marker):]
		id = id[:strings.Index(id, `"`)]

		form := url.Values{"comment": {"Parabéns"}}
		req = httptest.NewRequest("POST", "/instances/"+id+"/comments", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusSeeOther, w.Code)

		req = httptest.NewRequest("GET", w.Header().Get("Location"), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<p>Parabéns</p>")
	})

	t.Run("static files", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/static/post.css", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "#121214")
	})

	t.Run("unknown page", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/nowhere", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPIRoutes(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("GET /api/posts", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/posts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var res struct {
			Posts []struct {
				Slug string `json:"slug"`
			} `json:"posts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Posts, 2)
		assert.Equal(t, "diego-portfolio", res.Posts[0].Slug)
	})

	t.Run("instance lifecycle", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/posts/mayk-novidades/instances", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var mounted struct {
			InstanceID string `json:"instanceId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mounted))
		base := "/api/instances/" + mounted.InstanceID

		req = httptest.NewRequest("POST", base+"/comments", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		req = httptest.NewRequest("PUT", base+"/draft", strings.NewReader(`{"text":"Show!"}`))
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest("POST", base+"/comments", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"content":"Show!"`)

		req = httptest.NewRequest("DELETE", base+"/comments", strings.NewReader(`{"content":"Post muito bacana"}`))
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Post muito bacana")

		req = httptest.NewRequest("DELETE", base, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		req = httptest.NewRequest("GET", base, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown API route returns JSON", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/nowhere", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})
}

func TestNotFoundGoesThroughMiddleware(t *testing.T) {
	var logs bytes.Buffer
	router := setupTestRouterWithLog(t, zerolog.New(&logs))

	for _, path := range []string{"/nowhere", "/api/nowhere"} {
		logs.Reset()
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set(middleware.RequestIDHeader, "req-404")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "req-404", w.Header().Get(middleware.RequestIDHeader), path)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry), path)
		assert.Equal(t, path, entry["path"])
		assert.Equal(t, float64(http.StatusNotFound), entry["status"])
		assert.Equal(t, "req-404", entry["request_id"])
	}
}
