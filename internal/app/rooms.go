package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"aurora_hotel/internal/domain"
)

type RoomService struct {
	rooms    domain.RoomRepository
	media    domain.MediaStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRoomService(rooms domain.RoomRepository, media domain.MediaStore,
	cache domain.Cache, cacheTTL time.Duration) *RoomService {
	return &RoomService{rooms: rooms, media: media, cache: cache, cacheTTL: cacheTTL}
}

type RoomInput struct {
	Type        string
	Price       float64
	Description string
}

// Photo carries an optional multipart upload alongside room fields.
type Photo struct {
	R    io.Reader
	Size int64
	Name string
}

func (s *RoomService) Add(ctx context.Context, in RoomInput, photo *Photo) (domain.Room, error) {
	if strings.TrimSpace(in.Type) == "" {
		return domain.Room{}, errValidation("room type is required")
	}
	if in.Price <= 0 {
		return domain.Room{}, errValidation("room price must be positive")
	}

	rm := domain.Room{Type: strings.TrimSpace(in.Type), Price: in.Price, Description: in.Description}
	if photo != nil {
		url, err := s.media.Store(ctx, photo.R, photo.Size, photo.Name)
		if err != nil {
			return domain.Room{}, err
		}
		rm.PhotoURL = url
	}

	id, err := s.rooms.Create(ctx, rm)
	if err != nil {
		return domain.Room{}, err
	}
	rm.ID = id
	return rm, nil
}

func (s *RoomService) Update(ctx context.Context, id int64, in RoomInput, photo *Photo) (domain.Room, error) {
	rm, err := s.rooms.ByID(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	if t := strings.TrimSpace(in.Type); t != "" {
		rm.Type = t
	}
	if in.Price > 0 {
		rm.Price = in.Price
	}
	if in.Description != "" {
		rm.Description = in.Description
	}
	if photo != nil {
		url, err := s.media.Store(ctx, photo.R, photo.Size, photo.Name)
		if err != nil {
			return domain.Room{}, err
		}
		rm.PhotoURL = url
	}
	if err := s.rooms.Update(ctx, rm); err != nil {
		return domain.Room{}, err
	}
	_ = s.cache.Del(ctx, roomKey(id))
	return rm, nil
}

// AttachImage stores a photo for an existing room and persists the URL.
func (s *RoomService) AttachImage(ctx context.Context, id int64, photo Photo) (string, error) {
	rm, err := s.rooms.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.media.Store(ctx, photo.R, photo.Size, photo.Name)
	if err != nil {
		return "", err
	}
	rm.PhotoURL = url
	if err := s.rooms.Update(ctx, rm); err != nil {
		return "", err
	}
	_ = s.cache.Del(ctx, roomKey(id))
	return url, nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	key := roomKey(id)
	var rm domain.Room
	if ok, _ := s.cache.Get(ctx, key, &rm); ok {
		return rm, nil
	}
	rm, err := s.rooms.ByID(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	_ = s.cache.Set(ctx, key, rm, int(s.cacheTTL.Seconds()))
	return rm, nil
}

func (s *RoomService) List(ctx context.Context, limit int) ([]domain.Room, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.rooms.List(ctx, limit)
}

func (s *RoomService) Types(ctx context.Context) ([]string, error) {
	return s.rooms.Types(ctx)
}

func (s *RoomService) AvailableBetween(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]domain.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, domain.ErrInvalidDateRange
	}
	return s.rooms.AvailableBetween(ctx, checkIn, checkOut, roomType)
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, roomKey(id))
	return nil
}

func roomKey(id int64) string { return fmt.Sprintf("room:%d", id) }
