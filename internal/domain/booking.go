package domain

import (
	"strings"
	"time"

	"guidemarket/internal/pkg/validator"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is kept as a data shape only; nothing moves it past pending.
type Booking struct {
	ID         string        `json:"id"`
	GuideID    string        `json:"guideId"`
	UserID     string        `json:"userId"`
	UserName   string        `json:"userName"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	StartDate  string        `json:"startDate"`
	EndDate    string        `json:"endDate"`
	GroupSize  int           `json:"groupSize"`
	Message    string        `json:"message"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type BookingInput struct {
	GuideID    string  `json:"guideId" validate:"required"`
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Phone      string  `json:"phone"`
	StartDate  string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	GroupSize  int     `json:"groupSize" validate:"gte=0"`
	Message    string  `json:"message"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

func (in BookingInput) Validate() error {
	if fields := validator.Validate(in); len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func NewBooking(in BookingInput, id string, now time.Time) Booking {
	size := in.GroupSize
	if size <= 0 {
		size = 1
	}
	return Booking{
		ID:         id,
		GuideID:    strings.TrimSpace(in.GuideID),
		UserID:     in.UserID,
		UserName:   in.UserName,
		Email:      in.Email,
		Phone:      in.Phone,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		GroupSize:  size,
		Message:    in.Message,
		TotalPrice: in.TotalPrice,
		Status:     BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
