package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aurora_hotel/internal/domain"
)

// Create inserts the booking after re-running the overlap check inside
// a transaction. The FOR UPDATE range scan on (room_id, check_in,
// check_out) makes the check-then-insert safe against a concurrent
// create for the same room: the second transaction blocks on the index
// locks and then sees the first booking.
func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	in := b.CheckIn.Format(dateLayout)
	out := b.CheckOut.Format(dateLayout)

	var n int
	if err := tx.QueryRowContext(ctx, overlapCountForUpdateSQL, b.RoomID, out, in).Scan(&n); err != nil {
		return 0, fmt.Errorf("overlap check: %w", err)
	}
	if n > 0 {
		return 0, domain.ErrRoomUnavailable
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.RoomID, b.UserID, in, out, b.NumAdults, b.NumChildren, b.ConfirmationCode)
	if err != nil {
		if isDup(err) {
			// unique confirmation_code index lost a race; caller regenerates
			return 0, fmt.Errorf("confirmation code: %w", domain.ErrConflict)
		}
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit booking: %w", err)
	}
	return id, nil
}

func (r *BookingRepo) ByID(ctx context.Context, id int64) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, room_id, user_id, check_in, check_out, num_adults, num_children, confirmation_code, created_at
FROM bookings WHERE id = ?`, id)

	var b domain.Booking
	var code string
	if err := row.Scan(&b.ID, &b.RoomID, &b.UserID, &b.CheckIn, &b.CheckOut,
		&b.NumAdults, &b.NumChildren, &code, &b.CreatedAt); err != nil {
		return domain.Booking{}, notFound(err)
	}
	b.ConfirmationCode = code
	return b, nil
}

func (r *BookingRepo) ByConfirmationCode(ctx context.Context, code string) (domain.BookingDetail, error) {
	row := r.db.QueryRowContext(ctx, selectBookingDetailSQL+`WHERE b.confirmation_code = ?`, code)
	return scanBookingDetail(row)
}

func (r *BookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE confirmation_code = ?`, code).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepo) Overlaps(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, overlapCountSQL,
		roomID, checkOut.Format(dateLayout), checkIn.Format(dateLayout)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepo) List(ctx context.Context, limit int) ([]domain.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, selectBookingDetailSQL+`ORDER BY b.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingDetails(rows)
}

func (r *BookingRepo) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, selectBookingDetailSQL+`WHERE b.user_id = ? ORDER BY b.check_in DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingDetails(rows)
}

func (r *BookingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBookingDetail(row rowScanner) (domain.BookingDetail, error) {
	var d domain.BookingDetail
	var photo sql.NullString
	var uname sql.NullString
	if err := row.Scan(
		&d.ID, &d.RoomID, &d.UserID, &d.CheckIn, &d.CheckOut,
		&d.NumAdults, &d.NumChildren, &d.ConfirmationCode, &d.CreatedAt,
		&d.RoomType, &d.RoomPrice, &photo,
		&d.UserEmail, &uname,
	); err != nil {
		return domain.BookingDetail{}, notFound(err)
	}
	d.RoomPhotoURL = photo.String
	d.UserName = uname.String
	return d, nil
}

func collectBookingDetails(rows *sql.Rows) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
