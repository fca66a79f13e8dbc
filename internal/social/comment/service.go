// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/internal/platform/sec"
	"github.com/taibuivan/readverse/internal/platform/validate"
	"github.com/taibuivan/readverse/pkg/pagination"
	"github.com/taibuivan/readverse/pkg/slice"
	"github.com/taibuivan/readverse/pkg/uuid"
)

// # Service Layer

// Service implements the comment threads.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a comment [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateInput is a new comment or reply.
type CreateInput struct {
	ContentID string `json:"contentId"`
	ChapterID string `json:"chapterId"`
	ParentID  string `json:"parentId"`
	Message   string `json:"message"`
}

/*
Create posts a comment as the authenticated caller.

Description: An empty parent means a root comment. A reply's parent must be a
live comment of the same thread.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims
  - input: CreateInput

Returns:
  - *Comment: The stored comment
  - error: Validation, NotFound (parent) or raw store errors
*/
func (service *Service) Create(context context.Context, caller *sec.AuthClaims, input CreateInput) (*Comment, error) {
	input.Message = strings.TrimSpace(input.Message)
	input.ContentID = strings.TrimSpace(input.ContentID)
	input.ParentID = strings.TrimSpace(input.ParentID)
	if input.ParentID == "" {
		input.ParentID = RootParent
	}

	v := &validate.Validator{}
	v.Required("contentId", input.ContentID)
	validateMessage(v, input.Message)
	if err := v.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	rootID := id
	if input.ParentID != RootParent {
		parent, err := service.repo.FindByID(context, input.ParentID)
		switch {
		case errors.Is(err, dberr.ErrNotFound):
			return nil, apperr.NotFound("Parent comment")
		case err != nil:
			return nil, err
		}
		if parent.IsDeleted || parent.ContentID != input.ContentID || parent.ChapterID != input.ChapterID {
			return nil, apperr.NotFound("Parent comment")
		}
		rootID = parent.RootID
	}

	now := service.now().UTC()
	comment := &Comment{
		ID:        id,
		ParentID:  input.ParentID,
		RootID:    rootID,
		Message:   input.Message,
		ContentID: input.ContentID,
		ChapterID: input.ChapterID,
		User:      Author{ID: caller.UserID, Username: caller.Username, Avatar: caller.Avatar},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("content_id", comment.ContentID),
		slog.String("parent_id", comment.ParentID),
	)
	return comment, nil
}

// Edit replaces the message of the caller's own comment.
func (service *Service) Edit(context context.Context, caller *sec.AuthClaims, id, message string) (*Comment, error) {
	message = strings.TrimSpace(message)

	v := &validate.Validator{}
	validateMessage(v, message)
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment, err := service.live(context, id)
	if err != nil {
		return nil, err
	}
	if comment.User.ID != caller.UserID {
		return nil, apperr.Forbidden("Only the author can edit this comment")
	}

	comment.Message = message
	comment.IsEdited = true
	comment.UpdatedAt = service.now().UTC()

	if err := service.save(context, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment. Authors delete their own comments, moderators
// any comment. Replies stay in place under the blanked message.
func (service *Service) Delete(context context.Context, caller *sec.AuthClaims, id string) error {
	comment, err := service.live(context, id)
	if err != nil {
		return err
	}
	if comment.User.ID != caller.UserID && !sec.UserRole(caller.Role).AtLeast(sec.RoleModerator) {
		return apperr.Forbidden("Only the author or a moderator can delete this comment")
	}

	comment.Message = ""
	comment.IsDeleted = true
	comment.UpdatedAt = service.now().UTC()

	if err := service.save(context, comment); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.String("comment_id", comment.ID),
		slog.String("by", caller.UserID),
	)
	return nil
}

// Report flags a comment for moderation.
func (service *Service) Report(context context.Context, caller *sec.AuthClaims, id string) error {
	comment, err := service.live(context, id)
	if err != nil {
		return err
	}
	if comment.IsReported {
		return nil
	}

	comment.IsReported = true
	comment.UpdatedAt = service.now().UTC()

	if err := service.save(context, comment); err != nil {
		return err
	}

	service.logger.WarnContext(context, "comment_reported",
		slog.String("comment_id", comment.ID),
		slog.String("by", caller.UserID),
	)
	return nil
}

/*
List returns one page of root comments with their reply trees.

Parameters:
  - context: context.Context
  - thread: Thread
  - sortKey: SortKey (NEWEST when empty or unknown)
  - page: int (1-based)

Returns:
  - *Page: Roots sorted by sortKey, replies oldest first
  - error: Raw store errors
*/
func (service *Service) List(context context.Context, thread Thread, sortKey SortKey, page int) (*Page, error) {
	if !sortKey.IsValid() {
		sortKey = SortNewest
	}
	params := pagination.Params{Page: max(page, 1), Limit: constants.CommentPageSize}

	roots, err := service.repo.ListRoots(context, thread, sortKey, params)
	if err != nil {
		return nil, err
	}
	rootCount, total, err := service.repo.Count(context, thread)
	if err != nil {
		return nil, err
	}

	if len(roots) > 0 {
		replies, err := service.repo.ListReplies(context, slice.Map(roots, func(root *Comment) string { return root.ID }))
		if err != nil {
			return nil, err
		}
		attachReplies(roots, replies)
	}

	return &Page{
		Comments:      roots,
		TotalComments: total,
		TotalPages:    pagination.TotalPages(rootCount, params.Limit),
		PageNumber:    params.Page,
		SortKey:       sortKey,
	}, nil
}

// live loads a comment that has not been deleted.
func (service *Service) live(context context.Context, id string) (*Comment, error) {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}

func (service *Service) save(context context.Context, comment *Comment) error {
	err := service.repo.Update(context, comment)
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Comment")
	}
	return err
}

func validateMessage(v *validate.Validator, message string) {
	v.Required("message", message).MaxLen("message", message, maxMessageLength)
}
