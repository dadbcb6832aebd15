package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aurora_hotel/internal/domain"
)

func (r *RoomRepo) Create(ctx context.Context, rm domain.Room) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.Type, rm.Price, rm.Description, rm.PhotoURL)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *RoomRepo) Update(ctx context.Context, rm domain.Room) error {
	res, err := r.db.ExecContext(ctx, updateRoomSQL,
		rm.Type, rm.Price, rm.Description, rm.PhotoURL, rm.ID)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update;
	// disambiguate with an existence probe only in the miss case.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.ByID(ctx, rm.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *RoomRepo) ByID(ctx context.Context, id int64) (domain.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx, selectRoomCols+`WHERE id = ?`, id))
}

func (r *RoomRepo) List(ctx context.Context, limit int) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomCols+`ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

func (r *RoomRepo) Types(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT room_type FROM rooms ORDER BY room_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *RoomRepo) AvailableBetween(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, availableRoomsSQL,
		roomType, roomType,
		checkOut.Format(dateLayout), checkIn.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		if isFKRestrict(err) {
			return fmt.Errorf("room %d still has bookings: %w", id, domain.ErrConflict)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var rm domain.Room
	var desc sql.NullString
	if err := row.Scan(&rm.ID, &rm.Type, &rm.Price, &desc, &rm.PhotoURL, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return domain.Room{}, notFound(err)
	}
	rm.Description = desc.String
	return rm, nil
}

func collectRooms(rows *sql.Rows) ([]domain.Room, error) {
	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}
