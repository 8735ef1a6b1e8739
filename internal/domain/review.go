package domain

import (
	"strings"
	"time"

	"guidemarket/internal/pkg/validator"
)

// Review belongs to exactly one guide and is removed with it.
type Review struct {
	ID        string    `json:"id"`
	GuideID   string    `json:"guideId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserPhoto *string   `json:"userPhoto,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Trip      string    `json:"trip"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewInput struct {
	GuideID   string  `json:"guideId" validate:"required"`
	UserID    string  `json:"userId"`
	UserName  string  `json:"userName"`
	UserPhoto *string `json:"userPhoto,omitempty"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string  `json:"comment"`
	Trip      string  `json:"trip"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (in ReviewInput) Validate() error {
	if fields := validator.Validate(in); len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func NewReview(in ReviewInput, id string, now time.Time) Review {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format(DateLayout)
	}
	return Review{
		ID:        id,
		GuideID:   strings.TrimSpace(in.GuideID),
		UserID:    in.UserID,
		UserName:  strings.TrimSpace(in.UserName),
		UserPhoto: in.UserPhoto,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Trip:      in.Trip,
		Date:      date,
		CreatedAt: now,
	}.Clone()
}

// Clone returns a copy that does not share UserPhoto with r.
func (r Review) Clone() Review {
	if r.UserPhoto != nil {
		photo := *r.UserPhoto
		r.UserPhoto = &photo
	}
	return r
}

// Ratings extracts the rating values of reviews written for guideID.
func Ratings(reviews []Review, guideID string) []int {
	out := make([]int, 0)
	for _, r := range reviews {
		if r.GuideID == guideID {
			out = append(out, r.Rating)
		}
	}
	return out
}
