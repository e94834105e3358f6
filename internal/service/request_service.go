package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestService управляет запросами вещей: пользователь описывает, что ему
// нужно, владельцы отвечают, создавая вещь со ссылкой на запрос.
type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requestorID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("request description must not be empty")
	}

	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: description, RequestorID: requestorID, Items: []models.Item{}}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, apperr.Internal("failed to create request", err)
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requestor_id", requestorID).Msg("item request created")
	return request, nil
}

// GetOwn возвращает запросы пользователя вместе с вещами-ответами.
func (s *RequestService) GetOwn(ctx context.Context, userID int64) ([]models.ItemRequest, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list requests", err)
	}
	return s.attachItems(ctx, requests)
}

// GetAll возвращает чужие запросы, на которые пользователь может ответить.
func (s *RequestService) GetAll(ctx context.Context, userID int64, from, size int) ([]models.ItemRequest, error) {
	if from < 0 {
		return nil, apperr.Validation("from must not be negative")
	}
	if size <= 0 {
		return nil, apperr.Validation("size must be positive")
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsFromOthers(ctx, userID, size, from)
	if err != nil {
		return nil, apperr.Internal("failed to list requests", err)
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, requestID, userID int64) (*models.ItemRequest, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("request not found: %d", requestID)
		}
		return nil, apperr.Internal("failed to load request", err)
	}

	items, err := s.repo.GetItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, apperr.Internal("failed to load request items", err)
	}
	request.Items = items
	return request, nil
}

func (s *RequestService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperr.NotFound("user not found: %d", userID)
		}
		return apperr.Internal("failed to load user", err)
	}
	return nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequest, error) {
	for i := range requests {
		items, err := s.repo.GetItemsByRequest(ctx, requests[i].ID)
		if err != nil {
			return nil, apperr.Internal("failed to load request items", err)
		}
		requests[i].Items = items
	}
	return requests, nil
}
