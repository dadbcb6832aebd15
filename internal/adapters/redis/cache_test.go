package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "aurora_hotel/internal/adapters/redis"
	"aurora_hotel/internal/domain"
)

func newCache(t *testing.T) *redisad.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0)
}

func TestCache_SetGetDel(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	in := domain.Room{ID: 5, Type: "Suite", Price: 180.5, PhotoURL: "/uploads/room-images/a.jpg"}
	if err := c.Set(ctx, "room:5", in, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out domain.Room
	ok, err := c.Get(ctx, "room:5", &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.ID != 5 || out.Type != "Suite" || out.Price != 180.5 {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "room:5"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	ok, err = c.Get(ctx, "room:5", &out)
	if err != nil || ok {
		t.Fatalf("expected miss after Del, ok=%v err=%v", ok, err)
	}
}

func TestCache_DelRemovesAllKeys(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "room:1", domain.Room{ID: 1}, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "booking:code:ABC123XY9Z", domain.BookingDetail{}, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := c.Del(ctx, "room:1", "booking:code:ABC123XY9Z"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	var rm domain.Room
	if ok, _ := c.Get(ctx, "room:1", &rm); ok {
		t.Fatalf("room key survived Del")
	}
	var d domain.BookingDetail
	if ok, _ := c.Get(ctx, "booking:code:ABC123XY9Z", &d); ok {
		t.Fatalf("booking key survived Del")
	}

	if err := c.Del(ctx); err != nil {
		t.Fatalf("empty Del must be a no-op: %v", err)
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c := newCache(t)

	var out domain.BookingDetail
	ok, err := c.Get(context.Background(), "booking:code:NOPE", &out)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
