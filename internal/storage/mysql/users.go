package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"aurora_hotel/internal/domain"
)

func (r *UserRepo) Create(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Email, u.Name, u.PhoneNumber, u.PasswordHash, string(u.Role))
	if err != nil {
		if isDup(err) {
			return 0, fmt.Errorf("email %s: %w", u.Email, domain.ErrConflict)
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserCols+`WHERE id = ?`, id))
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUserCols+`WHERE email = ?`, email))
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserCols+`ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if isFKRestrict(err) {
			return fmt.Errorf("user %d still has bookings: %w", id, domain.ErrConflict)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string
	var phone, name sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &name, &phone, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return domain.User{}, notFound(err)
	}
	u.Name = name.String
	u.PhoneNumber = phone.String
	u.Role = domain.Role(role)
	return u, nil
}
