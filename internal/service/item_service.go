package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/clock"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   domain.Repository
	clock  clock.Clock
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, clk clock.Clock, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, clock: clk, logger: logger}
}

func (s *ItemService) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, item.OwnerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %d", item.OwnerID)
		}
		return nil, apperr.Internal("failed to load owner", err)
	}

	// Вещь-ответ должна ссылаться на существующий запрос
	if item.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *item.RequestID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, apperr.NotFound("request not found: %d", *item.RequestID)
			}
			return nil, apperr.Internal("failed to load request", err)
		}
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, apperr.Internal("failed to create item", err)
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", item.OwnerID).Msg("item created")
	return item, nil
}

// GetByID собирает карточку вещи: отзывы для всех, последнее и ближайшее
// подтвержденное бронирование - только для владельца.
func (s *ItemService) GetByID(ctx context.Context, itemID, userID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %d", itemID)
		}
		return nil, apperr.Internal("failed to load item", err)
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, apperr.Internal("failed to load comments", err)
	}

	details := &models.ItemDetails{Item: *item, Comments: comments}
	if item.OwnerID == userID {
		now := s.clock.Now()
		if details.LastBooking, err = s.repo.LastBookingForItem(ctx, itemID, now); err != nil {
			return nil, apperr.Internal("failed to load last booking", err)
		}
		if details.NextBooking, err = s.repo.NextBookingForItem(ctx, itemID, now); err != nil {
			return nil, apperr.Internal("failed to load next booking", err)
		}
	}

	return details, nil
}

// Update меняет только переданные поля и доступен только владельцу.
func (s *ItemService) Update(ctx context.Context, itemID, ownerID int64, name, description *string, available *bool) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %d", itemID)
		}
		return nil, apperr.Internal("failed to load item", err)
	}

	if item.OwnerID != ownerID {
		return nil, apperr.Forbidden("only the owner can update an item")
	}

	if name != nil {
		item.Name = *name
	}
	if description != nil {
		item.Description = *description
	}
	if available != nil {
		item.Available = *available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, apperr.Internal("failed to update item", err)
	}
	return item, nil
}

func (s *ItemService) GetByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %d", ownerID)
		}
		return nil, apperr.Internal("failed to load owner", err)
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("failed to list items", err)
	}
	return items, nil
}

func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	items, err := s.repo.SearchAvailableItems(ctx, text)
	if err != nil {
		return nil, apperr.Internal("failed to search items", err)
	}
	return items, nil
}

// AddComment разрешает отзыв только тому, кто уже завершил подтвержденное
// бронирование этой вещи.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("comment text must not be empty")
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %d", authorID)
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %d", itemID)
		}
		return nil, apperr.Internal("failed to load item", err)
	}

	finished, err := s.repo.HasFinishedBooking(ctx, itemID, authorID, s.clock.Now())
	if err != nil {
		return nil, apperr.Internal("failed to check bookings", err)
	}
	if !finished {
		return nil, apperr.Validation("commenting requires a finished booking of the item")
	}

	comment := &models.Comment{ItemID: itemID, AuthorID: authorID, Text: text}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}
	comment.AuthorName = author.Name
	return comment, nil
}
