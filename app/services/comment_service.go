package services

import (
	"errors"
	"fmt"
	"time"

	"postfeed/app/models"
	"postfeed/app/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidComment is returned when a submission fails validation. The
// returned instance then carries the message in State.Validation.
var ErrInvalidComment = errors.New("invalid comment")

// CommentService mounts post instances and applies the comment state
// transitions to them.
type CommentService struct {
	instanceRepo repositories.InstanceRepository
	postRepo     repositories.PostRepository
	validator    *commentValidator
	seed         string
	log          zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewCommentService creates a new CommentService. Every mounted instance
// starts with seed as its only comment.
func NewCommentService(instanceRepo repositories.InstanceRepository, postRepo repositories.PostRepository, seed string, log zerolog.Logger) (*CommentService, error) {
	v, err := newCommentValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to set up comment validation: %w", err)
	}
	return &CommentService{
		instanceRepo: instanceRepo,
		postRepo:     postRepo,
		validator:    v,
		seed:         seed,
		log:          log,
		now:          time.Now,
		newID:        uuid.NewString,
	}, nil
}

// RequiredMessage is the message shown when the comment field is empty.
func (s *CommentService) RequiredMessage() string {
	return RequiredMessage
}

// Mount creates a fresh instance of the post identified by slug.
func (s *CommentService) Mount(slug string) (*models.Instance, *models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, fmt.Errorf("post %q: %w", slug, err)
	}

	inst := &models.Instance{
		ID:        s.newID(),
		PostSlug:  post.Slug,
		State:     models.NewCommentState(s.seed),
		MountedAt: s.now(),
	}
	if err := s.instanceRepo.Create(inst); err != nil {
		return nil, nil, fmt.Errorf("failed to mount instance: %w", err)
	}

	s.log.Debug().Str("instance_id", inst.ID).Str("post", post.Slug).Msg("instance mounted")
	return inst, post, nil
}

// Get retrieves an instance and the post it renders.
func (s *CommentService) Get(id string) (*models.Instance, *models.Post, error) {
	inst, err := s.instanceRepo.GetByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("instance %q: %w", id, err)
	}
	return s.withPost(inst)
}

func (s *CommentService) withPost(inst *models.Instance) (*models.Instance, *models.Post, error) {
	post, err := s.postRepo.GetBySlug(inst.PostSlug)
	if err != nil {
		return nil, nil, fmt.Errorf("post %q: %w", inst.PostSlug, err)
	}
	return inst, post, nil
}

func (s *CommentService) apply(id string, fn func(inst *models.Instance) error) (*models.Instance, *models.Post, error) {
	inst, err := s.instanceRepo.Update(id, fn)
	if err != nil {
		return nil, nil, fmt.Errorf("instance %q: %w", id, err)
	}
	return s.withPost(inst)
}

// Input binds text to the draft of an instance.
func (s *CommentService) Input(id, text string) (*models.Instance, *models.Post, error) {
	return s.apply(id, func(inst *models.Instance) error {
		inst.State = inst.State.Input(text)
		return nil
	})
}

// Submit appends the current draft. An empty draft is rejected with
// ErrInvalidComment; the list and the draft stay as they were and the
// validation message is recorded on the instance.
func (s *CommentService) Submit(id string) (*models.Instance, *models.Post, error) {
	return s.submit(id, nil)
}

// SubmitDraft binds text to the draft and submits it in one step, the way a
// form post delivers both at once.
func (s *CommentService) SubmitDraft(id, text string) (*models.Instance, *models.Post, error) {
	return s.submit(id, &text)
}

func (s *CommentService) submit(id string, text *string) (*models.Instance, *models.Post, error) {
	var message string
	inst, post, err := s.apply(id, func(inst *models.Instance) error {
		if text != nil {
			inst.State = inst.State.Input(*text)
		}
		if msg, ok := s.validator.check(inst.State.Draft); !ok {
			message = msg
			inst.State = inst.State.Invalid(msg)
			return nil
		}
		next, err := inst.State.Submit()
		if err != nil {
			return err
		}
		inst.State = next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if message != "" {
		return inst, post, fmt.Errorf("%w: %s", ErrInvalidComment, message)
	}
	return inst, post, nil
}

// DeleteComment removes every comment equal to content.
func (s *CommentService) DeleteComment(id, content string) (*models.Instance, *models.Post, error) {
	return s.apply(id, func(inst *models.Instance) error {
		inst.State = inst.State.Delete(content)
		return nil
	})
}

// Unmount discards an instance and its state.
func (s *CommentService) Unmount(id string) error {
	if err := s.instanceRepo.Delete(id); err != nil {
		return fmt.Errorf("instance %q: %w", id, err)
	}
	s.log.Debug().Str("instance_id", id).Msg("instance unmounted")
	return nil
}
