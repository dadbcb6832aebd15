package mysql

const insertUserSQL = `
INSERT INTO users (email, name, phone_number, password_hash, role)
VALUES (?, ?, ?, ?, ?)
`

const selectUserCols = `
SELECT id, email, name, phone_number, password_hash, role, created_at
FROM users
`

const insertRoomSQL = `
INSERT INTO rooms (room_type, room_price, room_description, room_photo_url)
VALUES (?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms
SET room_type = ?, room_price = ?, room_description = ?, room_photo_url = ?
WHERE id = ?
`

const selectRoomCols = `
SELECT id, room_type, room_price, room_description, room_photo_url, created_at, updated_at
FROM rooms
`

// Half-open overlap: an existing booking collides with [?, ?) when
// existing.check_in < check_out AND existing.check_out > check_in.
const overlapCountSQL = `
SELECT COUNT(*) FROM bookings
WHERE room_id = ? AND check_in < ? AND check_out > ?
`

// Same predicate with FOR UPDATE: inside the create transaction the
// next-key locks on idx_bookings_room_dates serialize two concurrent
// creates for the same room and date range.
const overlapCountForUpdateSQL = overlapCountSQL + ` FOR UPDATE`

const insertBookingSQL = `
INSERT INTO bookings
  (room_id, user_id, check_in, check_out, num_adults, num_children, confirmation_code)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Booking joined with its room and user summaries (read model).
const selectBookingDetailSQL = `
SELECT
  b.id, b.room_id, b.user_id, b.check_in, b.check_out,
  b.num_adults, b.num_children, b.confirmation_code, b.created_at,
  r.room_type, r.room_price, r.room_photo_url,
  u.email, u.name
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
`

// Rooms with no booking overlapping the requested range.
const availableRoomsSQL = selectRoomCols + `
WHERE (? = '' OR room_type = ?)
  AND id NOT IN (
    SELECT room_id FROM bookings WHERE check_in < ? AND check_out > ?
  )
ORDER BY id
`
