package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/utils"
)

// Webhook event names fired by content mutations.
const (
	EventEntryPublished = "entry.published"
	EventEntryUpdated   = "entry.updated"
	EventEntryDeleted   = "entry.deleted"
)

// ContentUsecase manages content types and entries for a site, firing webhook
// events on entry mutations.
type ContentUsecase struct {
	contentTypeRepo repositories.ContentTypeRepository
	entryRepo       repositories.EntryRepository
	webhookUsecase  *WebhookUsecase
}

// NewContentUsecase creates a new content usecase
func NewContentUsecase(contentTypeRepo repositories.ContentTypeRepository, entryRepo repositories.EntryRepository, webhookUsecase *WebhookUsecase) *ContentUsecase {
	return &ContentUsecase{
		contentTypeRepo: contentTypeRepo,
		entryRepo:       entryRepo,
		webhookUsecase:  webhookUsecase,
	}
}

// CreateContentType defines a new entry schema for a site.
func (u *ContentUsecase) CreateContentType(ctx context.Context, siteID uuid.UUID, input *entities.CreateContentTypeInput) (*entities.ContentType, error) {
	if _, err := u.contentTypeRepo.GetBySlug(ctx, siteID, input.Slug); err == nil {
		return nil, domainerrors.Conflict("content type slug is already taken")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	contentType := &entities.ContentType{
		ID:        utils.GenerateUUIDv7(),
		SiteID:    siteID,
		Name:      input.Name,
		Slug:      input.Slug,
		Fields:    input.Fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.contentTypeRepo.Create(ctx, contentType); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return contentType, nil
}

// ListContentTypes lists the schemas defined for a site.
func (u *ContentUsecase) ListContentTypes(ctx context.Context, siteID uuid.UUID) ([]*entities.ContentType, error) {
	types, err := u.contentTypeRepo.ListBySiteID(ctx, siteID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return types, nil
}

// CreateEntry creates an entry under one of the site's content types.
func (u *ContentUsecase) CreateEntry(ctx context.Context, siteID uuid.UUID, input *entities.CreateEntryInput) (*entities.Entry, error) {
	contentType, err := u.contentTypeRepo.GetByID(ctx, input.ContentTypeID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ValidationError("unknown content type")
		}
		return nil, domainerrors.InternalError(err)
	}
	if contentType.SiteID != siteID {
		return nil, domainerrors.ValidationError("content type belongs to another site")
	}

	now := time.Now()
	entry := &entities.Entry{
		ID:            utils.GenerateUUIDv7(),
		SiteID:        siteID,
		ContentTypeID: input.ContentTypeID,
		Title:         input.Title,
		Slug:          input.Slug,
		Data:          input.Data,
		Status:        entities.EntryStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Publish {
		entry.Status = entities.EntryStatusPublished
		entry.PublishedAt = null.TimeFrom(now)
	}

	if err := u.entryRepo.Create(ctx, entry); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if entry.Status == entities.EntryStatusPublished {
		u.fireEvent(ctx, siteID, EventEntryPublished, entry)
	}
	return entry, nil
}

// GetEntry fetches a single entry belonging to the site.
func (u *ContentUsecase) GetEntry(ctx context.Context, siteID, entryID uuid.UUID) (*entities.Entry, error) {
	entry, err := u.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("entry not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if entry.SiteID != siteID {
		return nil, domainerrors.NotFound("entry not found")
	}
	return entry, nil
}

// ListEntries returns a page of the site's entries, optionally filtered by
// content type.
func (u *ContentUsecase) ListEntries(ctx context.Context, siteID uuid.UUID, contentTypeID *uuid.UUID, params utils.PaginationParams) ([]*entities.Entry, utils.PaginationMeta, error) {
	entries, total, err := u.entryRepo.ListBySiteID(ctx, siteID, contentTypeID, params.PerPage, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return entries, utils.CalculatePagination(total, params.Page, params.PerPage), nil
}

// UpdateEntry applies a partial update. Publishing through the status field
// stamps PublishedAt and fires entry.published; other updates fire
// entry.updated.
func (u *ContentUsecase) UpdateEntry(ctx context.Context, siteID, entryID uuid.UUID, input *entities.UpdateEntryInput) (*entities.Entry, error) {
	entry, err := u.GetEntry(ctx, siteID, entryID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		entry.Title = input.Title
	}
	if input.Slug != "" {
		entry.Slug = input.Slug
	}
	if input.Data != nil {
		entry.Data = input.Data
	}

	event := EventEntryUpdated
	if input.Status != "" {
		switch entities.EntryStatus(input.Status) {
		case entities.EntryStatusPublished:
			if entry.Status != entities.EntryStatusPublished {
				event = EventEntryPublished
				entry.PublishedAt = null.TimeFrom(time.Now())
			}
			entry.Status = entities.EntryStatusPublished
		case entities.EntryStatusDraft:
			entry.Status = entities.EntryStatusDraft
		default:
			return nil, domainerrors.ValidationError("unknown entry status: " + input.Status)
		}
	}
	entry.UpdatedAt = time.Now()

	if err := u.entryRepo.Update(ctx, entry); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	u.fireEvent(ctx, siteID, event, entry)
	return entry, nil
}

// DeleteEntry soft-deletes an entry and fires entry.deleted.
func (u *ContentUsecase) DeleteEntry(ctx context.Context, siteID, entryID uuid.UUID) error {
	entry, err := u.GetEntry(ctx, siteID, entryID)
	if err != nil {
		return err
	}
	if err := u.entryRepo.SoftDelete(ctx, entryID); err != nil {
		return domainerrors.InternalError(err)
	}

	u.fireEvent(ctx, siteID, EventEntryDeleted, map[string]interface{}{
		"id":   entry.ID,
		"slug": entry.Slug,
	})
	return nil
}

// fireEvent dispatches asynchronously on a context detached from the request
// so delivery survives the response being written.
func (u *ContentUsecase) fireEvent(ctx context.Context, siteID uuid.UUID, event string, data interface{}) {
	if u.webhookUsecase == nil {
		return
	}
	go u.webhookUsecase.Dispatch(context.WithoutCancel(ctx), siteID, event, data)
}
