package repository

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"guidemarket/internal/domain"
	"guidemarket/internal/pkg/utils"
)

const (
	guidesTable  = "guides"
	reviewsTable = "reviews"
)

// textArray stores labels as text[] on postgres and as the same array literal
// in a text column on sqlite.
type textArray pq.StringArray

func (a textArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *textArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

func (textArray) GormDataType() string {
	return "text"
}

func (textArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type guideRow struct {
	ID              string    `gorm:"column:id;primaryKey"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name"`
	Name            string    `gorm:"column:name;not null"`
	Email           string    `gorm:"column:email;not null;uniqueIndex:idx_guides_email"`
	Phone           string    `gorm:"column:phone"`
	DateOfBirth     string    `gorm:"column:date_of_birth"`
	City            string    `gorm:"column:city;index"`
	Country         string    `gorm:"column:country"`
	Location        string    `gorm:"column:location;not null"`
	Languages       textArray `gorm:"column:languages"`
	Specializations textArray `gorm:"column:specializations"`
	Experience      int       `gorm:"column:experience"`
	PricePerHour    float64   `gorm:"column:price_per_hour;not null"`
	Description     string    `gorm:"column:description;type:text"`
	ProfilePhoto    string    `gorm:"column:profile_photo"`
	Gallery         string    `gorm:"column:gallery;type:text"`
	Certifications  string    `gorm:"column:certifications;type:text"`
	Achievements    string    `gorm:"column:achievements;type:text"`
	Rating          float64   `gorm:"column:rating"`
	ReviewCount     int       `gorm:"column:review_count"`
	Verified        bool      `gorm:"column:verified"`
	Availability    bool      `gorm:"column:availability"`
	JoinDate        string    `gorm:"column:join_date"`
	TotalTours      int       `gorm:"column:total_tours"`
	ResponseTime    string    `gorm:"column:response_time"`
	CreatedAt       time.Time `gorm:"column:created_at;index;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (guideRow) TableName() string { return guidesTable }

type reviewRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	GuideID   string    `gorm:"column:guide_id;not null;index"`
	UserID    string    `gorm:"column:user_id"`
	UserName  string    `gorm:"column:user_name"`
	UserPhoto *string   `gorm:"column:user_photo"`
	Rating    int       `gorm:"column:rating;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"column:comment;type:text"`
	Trip      string    `gorm:"column:trip"`
	Date      string    `gorm:"column:review_date"`
	CreatedAt time.Time `gorm:"column:created_at;index;autoCreateTime:false"`

	Guide *guideRow `gorm:"foreignKey:GuideID;references:ID;constraint:OnDelete:CASCADE"`
}

func (reviewRow) TableName() string { return reviewsTable }

func toDomainGuide(m guideRow) domain.GuideProfile {
	return domain.GuideProfile{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		DateOfBirth:     m.DateOfBirth,
		City:            m.City,
		Country:         m.Country,
		Location:        m.Location,
		Languages:       labels(m.Languages),
		Specializations: labels(m.Specializations),
		Experience:      m.Experience,
		PricePerHour:    m.PricePerHour,
		Description:     m.Description,
		ProfilePhoto:    m.ProfilePhoto,
		Gallery:         utils.StringToList(m.Gallery),
		Certifications:  utils.StringToList(m.Certifications),
		Achievements:    utils.StringToList(m.Achievements),
		Rating:          m.Rating,
		ReviewCount:     m.ReviewCount,
		Verified:        m.Verified,
		Availability:    m.Availability,
		JoinDate:        m.JoinDate,
		TotalTours:      m.TotalTours,
		ResponseTime:    m.ResponseTime,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func toGuideRow(g *domain.GuideProfile) guideRow {
	return guideRow{
		ID:              g.ID,
		FirstName:       g.FirstName,
		LastName:        g.LastName,
		Name:            g.Name,
		Email:           g.Email,
		Phone:           g.Phone,
		DateOfBirth:     g.DateOfBirth,
		City:            g.City,
		Country:         g.Country,
		Location:        g.Location,
		Languages:       textArray(labels(g.Languages)),
		Specializations: textArray(labels(g.Specializations)),
		Experience:      g.Experience,
		PricePerHour:    g.PricePerHour,
		Description:     g.Description,
		ProfilePhoto:    g.ProfilePhoto,
		Gallery:         utils.ListToString(g.Gallery),
		Certifications:  utils.ListToString(g.Certifications),
		Achievements:    utils.ListToString(g.Achievements),
		Rating:          g.Rating,
		ReviewCount:     g.ReviewCount,
		Verified:        g.Verified,
		Availability:    g.Availability,
		JoinDate:        g.JoinDate,
		TotalTours:      g.TotalTours,
		ResponseTime:    g.ResponseTime,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func toDomainReview(m reviewRow) domain.Review {
	return domain.Review{
		ID:        m.ID,
		GuideID:   m.GuideID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserPhoto: m.UserPhoto,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Trip:      m.Trip,
		Date:      m.Date,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toReviewRow(r *domain.Review) reviewRow {
	return reviewRow{
		ID:        r.ID,
		GuideID:   r.GuideID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		UserPhoto: r.UserPhoto,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Trip:      r.Trip,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

func labels(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// Migrate creates or updates the guides and reviews tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&guideRow{}, &reviewRow{})
}
