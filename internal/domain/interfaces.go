package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the persistence contract the services are built against.
// The sqlite implementation lives in internal/database.
type Repository interface {
	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	HasOverlappingBookings(ctx context.Context, itemID int64, start, end time.Time) (bool, error)
	HasOverlappingBookingsExcluding(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error)
	ListBookings(ctx context.Context, subjectID int64, viewpoint models.Viewpoint, state models.StateFilter, now time.Time, limit, offset int) ([]models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
	GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// Items
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]models.Item, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	// Item requests
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	GetRequestsFromOthers(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)
}

// EventPublisher delivers booking lifecycle events to interested consumers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter answers whether a caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
