// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/internal/platform/imagedata"
	"github.com/taibuivan/readverse/pkg/slug"
	"github.com/taibuivan/readverse/pkg/uuid"
)

// UpsertResult reports what an [Service.Upsert] did.
type UpsertResult struct {
	Created bool
	Content *Content
}

/*
Upsert creates a content or updates the one named by payload.ContentID.

Description: The payload is normalised and validated first. Every step then
runs in order, each store or storage call waiting for the previous one. The
sequence is not atomic: when the final store write fails after storage was
changed, the storage changes stay and a divergence warning is logged.

Parameters:
  - context: context.Context
  - payload: Payload (As submitted)

Returns:
  - *UpsertResult: The persisted record
  - error: Validation, Conflict (title taken), NotFound (update target) or the
    raw store/storage error
*/
func (service *Service) Upsert(context context.Context, payload Payload) (*UpsertResult, error) {
	payload.Normalize()
	if err := payload.Validate(service.imageSchemes...); err != nil {
		return nil, err
	}
	if err := service.checkGenres(context, payload.GenreIDs); err != nil {
		return nil, err
	}

	if payload.ContentID == "" {
		content, err := service.create(context, payload)
		if err != nil {
			return nil, err
		}
		return &UpsertResult{Created: true, Content: content}, nil
	}

	content, err := service.update(context, payload)
	if err != nil {
		return nil, err
	}
	return &UpsertResult{Content: content}, nil
}

// # Create

func (service *Service) create(context context.Context, payload Payload) (*Content, error) {
	if err := service.ensureTitleFree(context, payload.Title); err != nil {
		return nil, err
	}

	var touched []string

	thumbnail, err := service.storeImage(context, payload.Thumbnail, thumbnailKey(payload.Title), &touched)
	if err != nil {
		return nil, err
	}
	poster, err := service.storeImage(context, payload.Poster, posterKey(payload.Title), &touched)
	if err != nil {
		return nil, err
	}
	gallery, err := service.storeGallery(context, payload.Gallery, payload.Title, &touched)
	if err != nil {
		return nil, err
	}

	now := service.now().UTC()
	content := &Content{
		ID:                  uuid.New(),
		Title:               payload.Title,
		Slug:                slug.From(payload.Title),
		Tags:                payload.Tags,
		Status:              payload.Status,
		GenreIDs:            payload.GenreIDs,
		Author:              payload.Author,
		Synonyms:            payload.Synonyms,
		Description:         payload.Description,
		Thumbnail:           thumbnail,
		Poster:              poster,
		ImagesAndWallpapers: gallery,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := service.repo.Create(context, content); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, apperr.Conflict(MsgTitleDuplicate)
		}
		service.logDivergence(context, "content_create_diverged", content.ID, touched, err)
		return nil, err
	}

	service.invalidateLists(context)
	service.logger.InfoContext(context, "content_created",
		slog.String("content_id", content.ID),
		slog.String("title", content.Title),
		slog.Int("uploads", len(touched)),
	)

	return content, nil
}

// # Update

func (service *Service) update(context context.Context, payload Payload) (*Content, error) {
	content, err := service.repo.FindByID(context, payload.ContentID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Content")
		}
		return nil, err
	}

	oldTitle := content.Title
	renamed := payload.Title != oldTitle
	if renamed {
		if err := service.ensureTitleFree(context, payload.Title); err != nil {
			return nil, err
		}
	}

	var touched []string

	// New images always land under the stored title; a rename moves them below.
	thumbnail, err := service.storeImage(context, payload.Thumbnail, thumbnailKey(oldTitle), &touched)
	if err != nil {
		return nil, err
	}
	poster, err := service.storeImage(context, payload.Poster, posterKey(oldTitle), &touched)
	if err != nil {
		return nil, err
	}

	gallery := payload.Gallery
	if len(gallery) == 0 || imagedata.IsDataURI(gallery[0]) {
		folder := galleryFolderKey(oldTitle)
		if err := service.storage.DeleteFolder(context, folder); err != nil {
			return nil, err
		}
		touched = append(touched, folder)

		if gallery, err = service.storeGallery(context, payload.Gallery, oldTitle, &touched); err != nil {
			return nil, err
		}
	}

	if renamed {
		moved, err := service.storage.Move(context, folderKey(oldTitle), folderKey(payload.Title))
		if err != nil {
			return nil, err
		}
		touched = append(touched, folderKey(oldTitle))

		movedImages, err := service.storage.Move(context, galleryFolderKey(oldTitle), galleryFolderKey(payload.Title))
		if err != nil {
			return nil, err
		}
		touched = append(touched, galleryFolderKey(oldTitle))

		thumbnail = remap(thumbnail, moved)
		poster = remap(poster, moved)
		gallery = movedGallery(gallery, movedImages)
	}

	content.Title = payload.Title
	content.Slug = slug.From(payload.Title)
	content.Tags = payload.Tags
	content.Status = payload.Status
	content.GenreIDs = payload.GenreIDs
	content.Author = payload.Author
	content.Synonyms = payload.Synonyms
	content.Description = payload.Description
	content.Thumbnail = thumbnail
	content.Poster = poster
	content.ImagesAndWallpapers = gallery
	content.UpdatedAt = service.now().UTC()

	if err := service.repo.Update(context, content); err != nil {
		switch {
		case errors.Is(err, dberr.ErrDuplicate):
			err = apperr.Conflict(MsgTitleDuplicate)
		case errors.Is(err, dberr.ErrNotFound):
			err = apperr.NotFound("Content")
		}
		service.logDivergence(context, "content_update_diverged", content.ID, touched, err)
		return nil, err
	}

	service.invalidateLists(context)
	service.logger.InfoContext(context, "content_updated",
		slog.String("content_id", content.ID),
		slog.String("title", content.Title),
		slog.Bool("renamed", renamed),
	)

	return content, nil
}

// # Helpers

// ensureTitleFree fails with a Conflict when a content already uses title.
func (service *Service) ensureTitleFree(context context.Context, title string) error {
	_, err := service.repo.FindByTitle(context, title)
	switch {
	case err == nil:
		return apperr.Conflict(MsgTitleDuplicate)
	case errors.Is(err, dberr.ErrNotFound):
		return nil
	default:
		return err
	}
}

// storeImage uploads value to key when it is a data URI and returns the
// resulting URL. URLs are returned unchanged.
func (service *Service) storeImage(context context.Context, value, key string, touched *[]string) (string, error) {
	if !imagedata.IsDataURI(value) {
		return value, nil
	}

	image, err := imagedata.Decode(value)
	if err != nil {
		return "", err
	}

	url, err := service.storage.Upload(context, key, image.Data, image.ContentType)
	if err != nil {
		return "", err
	}
	*touched = append(*touched, key)
	return url, nil
}

// storeGallery stores every gallery entry under the gallery folder of title.
func (service *Service) storeGallery(context context.Context, images []string, title string, touched *[]string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		url, err := service.storeImage(context, image, galleryKey(title), touched)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (service *Service) logDivergence(context context.Context, event, contentID string, touched []string, err error) {
	if len(touched) == 0 {
		return
	}
	service.logger.WarnContext(context, event,
		slog.String("content_id", contentID),
		slog.Any("storage_keys", touched),
		slog.Any("error", err),
	)
}
