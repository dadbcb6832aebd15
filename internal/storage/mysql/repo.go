package mysql

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"aurora_hotel/internal/domain"
)

// Repo bundles the per-entity repositories over one *sql.DB pool.
type Repo struct {
	Users    *UserRepo
	Rooms    *RoomRepo
	Bookings *BookingRepo
}

func New(db *sql.DB) *Repo {
	return &Repo{
		Users:    &UserRepo{db: db},
		Rooms:    &RoomRepo{db: db},
		Bookings: &BookingRepo{db: db},
	}
}

type UserRepo struct{ db *sql.DB }
type RoomRepo struct{ db *sql.DB }
type BookingRepo struct{ db *sql.DB }

// isDup reports whether err is a MySQL duplicate-entry violation (1062),
// i.e. a unique index rejected the write.
func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isFKRestrict reports a MySQL 1451: the row is still referenced by a
// child table, e.g. deleting a user or room that has bookings.
func isFKRestrict(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

const dateLayout = "2006-01-02"
