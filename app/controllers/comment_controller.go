package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"postfeed/app/datefmt"
	"postfeed/app/models"
	"postfeed/app/services"
	"postfeed/app/views"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests against mounted post instances
type CommentController struct {
	commentService *services.CommentService
	renderer       *views.Renderer
	formatter      *datefmt.Formatter
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, renderer *views.Renderer, formatter *datefmt.Formatter) *CommentController {
	return &CommentController{
		commentService: commentService,
		renderer:       renderer,
		formatter:      formatter,
	}
}

type draftRequest struct {
	Text *string `json:"text"`
}

type deleteRequest struct {
	Content string `json:"content"`
}

func (cc *CommentController) render(w http.ResponseWriter, r *http.Request, inst *models.Instance, post *models.Post, status int) {
	renderInstance(w, r, cc.renderer, cc.formatter, cc.commentService.RequiredMessage(), inst, post, status)
}

func (cc *CommentController) redirect(w http.ResponseWriter, r *http.Request, id string) {
	http.Redirect(w, r, "/instances/"+id, http.StatusSeeOther)
}

// Show renders an existing instance
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	inst, post, err := cc.commentService.Get(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Instance not found", statusFor(err))
		return
	}
	cc.render(w, r, inst, post, http.StatusOK)
}

// Input binds new text to the draft
func (cc *CommentController) Input(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == nil {
		sendError(w, r, "text is required", http.StatusBadRequest)
		return
	}

	inst, post, err := cc.commentService.Input(mux.Vars(r)["id"], *req.Text)
	if err != nil {
		sendError(w, r, "Failed to update draft: "+err.Error(), statusFor(err))
		return
	}
	cc.render(w, r, inst, post, http.StatusOK)
}

// Create submits the draft as a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var (
		inst *models.Instance
		post *models.Post
		err  error
	)
	if isAPIRequest(r) {
		var req draftRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
			sendError(w, r, "Invalid JSON: "+decodeErr.Error(), http.StatusBadRequest)
			return
		}
		if req.Text != nil {
			inst, post, err = cc.commentService.SubmitDraft(id, *req.Text)
		} else {
			inst, post, err = cc.commentService.Submit(id)
		}
	} else {
		if parseErr := r.ParseForm(); parseErr != nil {
			sendError(w, r, "Failed to parse form: "+parseErr.Error(), http.StatusBadRequest)
			return
		}
		inst, post, err = cc.commentService.SubmitDraft(id, r.FormValue("comment"))
	}

	switch {
	case errors.Is(err, services.ErrInvalidComment):
		if !isAPIRequest(r) {
			cc.redirect(w, r, id)
			return
		}
		sendJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":      "Failed to create comment",
			"validation": inst.State.Validation,
		})
	case err != nil:
		sendError(w, r, "Failed to create comment: "+err.Error(), statusFor(err))
	case isAPIRequest(r):
		cc.render(w, r, inst, post, http.StatusCreated)
	default:
		cc.redirect(w, r, id)
	}
}

// Delete removes every comment equal to the requested content
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var content string
	if isAPIRequest(r) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		content = req.Content
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		content = r.FormValue("content")
	}

	inst, post, err := cc.commentService.DeleteComment(id, content)
	if err != nil {
		sendError(w, r, "Failed to delete comment: "+err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		cc.render(w, r, inst, post, http.StatusOK)
		return
	}
	cc.redirect(w, r, id)
}

// Unmount discards an instance
func (cc *CommentController) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := cc.commentService.Unmount(mux.Vars(r)["id"]); err != nil {
		sendError(w, r, "Failed to unmount instance: "+err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
