//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"aurora_hotel/internal/domain"
	mysqlrepo "aurora_hotel/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=aurora",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/aurora?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange — a guest and a room
	uid, err := repo.Users.Create(ctx, domain.User{
		Email: "ana@x.com", Name: "Ana", PasswordHash: "$2a$10$hash", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.Users.Create(ctx, domain.User{
		Email: "ana@x.com", PasswordHash: "x", Role: domain.RoleUser,
	}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: want ErrConflict, got %v", err)
	}

	roomID, err := repo.Rooms.Create(ctx, domain.Room{Type: "Deluxe", Price: 149.99, Description: "Sea view"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	// First booking lands
	b := domain.Booking{
		RoomID: roomID, UserID: uid,
		CheckIn: day("2030-06-01"), CheckOut: day("2030-06-05"),
		NumAdults: 2, NumChildren: 1,
		ConfirmationCode: "ABC123XY9Z",
	}
	id, err := repo.Bookings.Create(ctx, b)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Overlapping range is rejected by the transactional check
	b2 := b
	b2.CheckIn, b2.CheckOut = day("2030-06-04"), day("2030-06-08")
	b2.ConfirmationCode = "DEF456QW7E"
	if _, err := repo.Bookings.Create(ctx, b2); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("overlap: want ErrRoomUnavailable, got %v", err)
	}

	// Back-to-back stay shares the boundary day and is accepted
	b3 := b
	b3.CheckIn, b3.CheckOut = day("2030-06-05"), day("2030-06-08")
	b3.ConfirmationCode = "GHI789RT0Y"
	if _, err := repo.Bookings.Create(ctx, b3); err != nil {
		t.Fatalf("adjacent booking: %v", err)
	}

	// Reusing a confirmation code trips the unique index
	b4 := b
	b4.CheckIn, b4.CheckOut = day("2030-07-01"), day("2030-07-03")
	if _, err := repo.Bookings.Create(ctx, b4); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("dup code: want ErrConflict, got %v", err)
	}

	// Detail lookup joins room and user
	d, err := repo.Bookings.ByConfirmationCode(ctx, "ABC123XY9Z")
	if err != nil {
		t.Fatalf("ByConfirmationCode: %v", err)
	}
	if d.ID != id || d.RoomType != "Deluxe" || d.UserEmail != "ana@x.com" || d.TotalGuests() != 3 {
		t.Fatalf("unexpected detail: %+v", d)
	}

	// Availability search excludes the booked room inside the range
	free, err := repo.Rooms.AvailableBetween(ctx, day("2030-06-02"), day("2030-06-04"), "")
	if err != nil {
		t.Fatalf("AvailableBetween: %v", err)
	}
	if len(free) != 0 {
		t.Fatalf("room should be busy 06-02..06-04: %+v", free)
	}
	free, err = repo.Rooms.AvailableBetween(ctx, day("2030-08-01"), day("2030-08-03"), "Deluxe")
	if err != nil {
		t.Fatalf("AvailableBetween: %v", err)
	}
	if len(free) != 1 || free[0].ID != roomID {
		t.Fatalf("room should be free in August: %+v", free)
	}

	// A room or user with live bookings cannot be deleted
	if err := repo.Rooms.Delete(ctx, roomID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("delete booked room: want ErrConflict, got %v", err)
	}
	if err := repo.Users.Delete(ctx, uid); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("delete user with bookings: want ErrConflict, got %v", err)
	}

	// Cancel, then everything 404s
	if err := repo.Bookings.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Bookings.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound, got %v", err)
	}
	if _, err := repo.Bookings.ByConfirmationCode(ctx, "ABC123XY9Z"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("lookup after delete: want ErrNotFound, got %v", err)
	}
}
