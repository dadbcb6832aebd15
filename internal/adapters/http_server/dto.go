package httpserver

import (
	"time"

	"aurora_hotel/internal/domain"
)

// Wire shapes keep the field names the web client already speaks
// (roomType, checkInDate, bookingConfirmationCode, ...).

type userDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, PhoneNumber: u.PhoneNumber, Role: string(u.Role)}
}

type roomDTO struct {
	ID              int64   `json:"id"`
	RoomType        string  `json:"roomType"`
	RoomPrice       float64 `json:"roomPrice"`
	RoomDescription string  `json:"roomDescription"`
	RoomPhotoURL    string  `json:"roomPhotoUrl"`
}

func toRoomDTO(r domain.Room) roomDTO {
	return roomDTO{ID: r.ID, RoomType: r.Type, RoomPrice: r.Price, RoomDescription: r.Description, RoomPhotoURL: r.PhotoURL}
}

func toRoomDTOs(rs []domain.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRoomDTO(r))
	}
	return out
}

type bookingDTO struct {
	ID                      int64  `json:"id"`
	RoomID                  int64  `json:"roomId"`
	UserID                  int64  `json:"userId"`
	CheckInDate             string `json:"checkInDate"`
	CheckOutDate            string `json:"checkOutDate"`
	NumOfAdults             int    `json:"numOfAdults"`
	NumOfChildren           int    `json:"numOfChildren"`
	TotalNumOfGuest         int    `json:"totalNumOfGuest"`
	BookingConfirmationCode string `json:"bookingConfirmationCode"`
}

func toBookingDTO(b domain.Booking) bookingDTO {
	return bookingDTO{
		ID:                      b.ID,
		RoomID:                  b.RoomID,
		UserID:                  b.UserID,
		CheckInDate:             b.CheckIn.Format(dateLayout),
		CheckOutDate:            b.CheckOut.Format(dateLayout),
		NumOfAdults:             b.NumAdults,
		NumOfChildren:           b.NumChildren,
		TotalNumOfGuest:         b.TotalGuests(),
		BookingConfirmationCode: b.ConfirmationCode,
	}
}

type bookingDetailDTO struct {
	bookingDTO
	RoomType     string  `json:"roomType"`
	RoomPrice    float64 `json:"roomPrice"`
	RoomPhotoURL string  `json:"roomPhotoUrl"`
	UserEmail    string  `json:"userEmail"`
	UserName     string  `json:"userName"`
}

func toBookingDetailDTO(d domain.BookingDetail) bookingDetailDTO {
	return bookingDetailDTO{
		bookingDTO:   toBookingDTO(d.Booking),
		RoomType:     d.RoomType,
		RoomPrice:    d.RoomPrice,
		RoomPhotoURL: d.RoomPhotoURL,
		UserEmail:    d.UserEmail,
		UserName:     d.UserName,
	}
}

func toBookingDetailDTOs(ds []domain.BookingDetail) []bookingDetailDTO {
	out := make([]bookingDetailDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, toBookingDetailDTO(d))
	}
	return out
}

type loginResultDTO struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Role      string `json:"role"`
	UserID    int64  `json:"userId"`
}

func toLoginResultDTO(token string, exp time.Time, role domain.Role, userID int64) loginResultDTO {
	return loginResultDTO{Token: token, ExpiresAt: exp.Format(time.RFC3339), Role: string(role), UserID: userID}
}
