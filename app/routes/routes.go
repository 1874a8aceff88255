package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"postfeed/app/controllers"
	"postfeed/app/datefmt"
	"postfeed/app/middleware"
	"postfeed/app/services"
	"postfeed/app/views"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Deps carries everything the router needs to build its controllers.
type Deps struct {
	PostService    *services.PostService
	CommentService *services.CommentService
	Renderer       *views.Renderer
	Formatter      *datefmt.Formatter
	StaticDir      string
	Log            zerolog.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))

	postController := controllers.NewPostController(deps.PostService, deps.CommentService, deps.Renderer, deps.Formatter)
	commentController := controllers.NewCommentController(deps.CommentService, deps.Renderer, deps.Formatter)

	// mux skips Use middleware for unmatched requests, so 404s get the chain here
	router.NotFoundHandler = middleware.RequestID(middleware.Logger(deps.Log)(middleware.Recoverer(deps.Log)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
				return
			}
			http.NotFound(w, r)
		}),
	)))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("/{slug}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("/{slug}/instances", postController.Mount).Methods("POST")

	// Instance API endpoints
	apiInstances := api.PathPrefix("/instances").Subrouter()
	apiInstances.HandleFunc("/{id}", commentController.Show).Methods("GET")
	apiInstances.HandleFunc("/{id}", commentController.Unmount).Methods("DELETE")
	apiInstances.HandleFunc("/{id}/draft", commentController.Input).Methods("PUT")
	apiInstances.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")
	apiInstances.HandleFunc("/{id}/comments", commentController.Delete).Methods("DELETE")

	// Serve static files
	if deps.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{slug}", postController.Show).Methods("GET")

	instances := router.PathPrefix("/instances").Subrouter()
	instances.HandleFunc("/{id}", commentController.Show).Methods("GET")
	instances.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")
	instances.HandleFunc("/{id}/comments/delete", commentController.Delete).Methods("POST")

	return router
}
