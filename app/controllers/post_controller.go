package controllers

import (
	"io"
	"net/http"

	"postfeed/app/datefmt"
	"postfeed/app/models"
	"postfeed/app/services"
	"postfeed/app/views"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	renderer       *views.Renderer
	formatter      *datefmt.Formatter
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, commentService *services.CommentService, renderer *views.Renderer, formatter *datefmt.Formatter) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		renderer:       renderer,
		formatter:      formatter,
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, views.IndexView{Posts: posts})
		return
	}
	sendHTML(w, r, http.StatusOK, func(out io.Writer) error {
		return pc.renderer.Index(out, &views.IndexView{Posts: posts})
	})
}

// Show mounts a fresh instance of a post and renders it. API requests get
// the post props instead.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	if isAPIRequest(r) {
		post, err := pc.postService.GetPost(slug)
		if err != nil {
			sendError(w, r, "Post not found", statusFor(err))
			return
		}
		sendJSON(w, http.StatusOK, post)
		return
	}

	inst, post, err := pc.commentService.Mount(slug)
	if err != nil {
		sendError(w, r, "Post not found", statusFor(err))
		return
	}
	renderInstance(w, r, pc.renderer, pc.formatter, pc.commentService.RequiredMessage(), inst, post, http.StatusOK)
}

// Mount creates a new instance of a post
func (pc *PostController) Mount(w http.ResponseWriter, r *http.Request) {
	inst, post, err := pc.commentService.Mount(mux.Vars(r)["slug"])
	if err != nil {
		sendError(w, r, "Failed to mount post: "+err.Error(), statusFor(err))
		return
	}
	renderInstance(w, r, pc.renderer, pc.formatter, pc.commentService.RequiredMessage(), inst, post, http.StatusCreated)
}

// renderInstance writes the view of an instance as JSON or HTML
func renderInstance(w http.ResponseWriter, r *http.Request, renderer *views.Renderer, formatter *datefmt.Formatter, requiredMessage string, inst *models.Instance, post *models.Post, status int) {
	view, err := views.BuildPostView(post, inst, formatter, requiredMessage)
	if err != nil {
		sendError(w, r, "Failed to render post: "+err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, status, view)
		return
	}
	sendHTML(w, r, status, func(out io.Writer) error {
		return renderer.Show(out, view)
	})
}
