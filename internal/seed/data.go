package seed

import "guidemarket/internal/domain"

// Guides returns the sample catalog loaded by the seeder.
func Guides() []domain.GuideInput {
	return []domain.GuideInput{
		{
			FirstName:       "Sarah",
			LastName:        "Martinez",
			Email:           "sarah.martinez@example.com",
			Phone:           "+34 612 345 678",
			City:            "Madrid",
			Country:         "Spain",
			Languages:       []string{"English", "Spanish", "French"},
			Specializations: []string{"Historical Tours", "Cultural Tours", "Food Tours"},
			Experience:      8,
			PricePerHour:    45,
			Description:     "Passionate local guide with deep knowledge of Madrid's history and culture. I love sharing the hidden gems and authentic experiences that make our city special.",
			ProfilePhoto:    "/images/guides/sarah.jpg",
		},
		{
			FirstName:       "Ahmed",
			LastName:        "Hassan",
			Email:           "ahmed.hassan@example.com",
			Phone:           "+971 50 123 4567",
			City:            "Dubai",
			Country:         "UAE",
			Languages:       []string{"English", "Arabic", "German"},
			Specializations: []string{"Adventure Tours", "Desert Safari", "Photography Tours"},
			Experience:      6,
			PricePerHour:    60,
			Description:     "Adventure enthusiast and professional photographer. I specialize in desert experiences and capturing the perfect moments of your journey.",
			ProfilePhoto:    "/images/guides/ahmed.jpg",
		},
		{
			FirstName:       "Hiroshi",
			LastName:        "Tanaka",
			Email:           "hiroshi.tanaka@example.com",
			Phone:           "+81 90 1234 5678",
			City:            "Kyoto",
			Country:         "Japan",
			Languages:       []string{"Japanese", "English", "Mandarin"},
			Specializations: []string{"Temple Tours", "Traditional Culture", "Garden Tours"},
			Experience:      12,
			PricePerHour:    55,
			Description:     "Traditional culture expert with over a decade of experience. I'll guide you through the spiritual heart of Japan and its timeless traditions.",
			ProfilePhoto:    "/images/guides/hiroshi.jpg",
		},
		{
			FirstName:       "Elena",
			LastName:        "Rossi",
			Email:           "elena.rossi@example.com",
			Phone:           "+39 338 123 4567",
			City:            "Florence",
			Country:         "Italy",
			Languages:       []string{"Italian", "English", "Spanish"},
			Specializations: []string{"Art Tours", "Wine Tours", "Cooking Classes"},
			Experience:      10,
			PricePerHour:    50,
			Description:     "Art historian and culinary expert. Let me show you the Renaissance masterpieces and authentic Italian flavors that define Florence.",
			ProfilePhoto:    "/images/guides/elena.jpg",
		},
		{
			FirstName:       "Thomas",
			LastName:        "Schmidt",
			Email:           "thomas.schmidt@example.com",
			Phone:           "+49 151 123 45678",
			City:            "Berlin",
			Country:         "Germany",
			Languages:       []string{"German", "English", "Dutch"},
			Specializations: []string{"Historical Tours", "Architecture Tours", "Beer Tours"},
			Experience:      7,
			PricePerHour:    40,
			Description:     "History buff and architecture enthusiast. I'll take you through Berlin's complex past and vibrant present with engaging stories.",
			ProfilePhoto:    "/images/guides/thomas.jpg",
		},
		{
			FirstName:       "Marie",
			LastName:        "Dubois",
			Email:           "marie.dubois@example.com",
			Phone:           "+33 6 12 34 56 78",
			City:            "Paris",
			Country:         "France",
			Languages:       []string{"French", "English", "Italian"},
			Specializations: []string{"Fashion Tours", "Museum Tours", "Luxury Shopping"},
			Experience:      9,
			PricePerHour:    65,
			Description:     "Fashion industry insider and art lover. Experience Paris through the lens of haute couture and artistic excellence.",
			ProfilePhoto:    "/images/guides/marie.jpg",
		},
		{
			FirstName:       "Kumara",
			LastName:        "Perera",
			Email:           "kumara.perera@example.com",
			Phone:           "+94 77 123 4567",
			City:            "Colombo",
			Country:         "Sri Lanka",
			Languages:       []string{"Sinhala", "English", "Tamil"},
			Specializations: []string{"Cultural Tours", "Temple Tours", "Wildlife Safari", "Tea Plantation Tours"},
			Experience:      11,
			PricePerHour:    35,
			Description:     "Born and raised in Sri Lanka, I'm passionate about sharing the rich culture, ancient history, and natural beauty of my island nation.",
			ProfilePhoto:    "/images/guides/kumara.jpg",
		},
	}
}

// Reviews returns sample reviews. GuideID is filled in by Run.
func Reviews() []domain.ReviewInput {
	return []domain.ReviewInput{
		{
			UserID:   "user_1",
			UserName: "John Smith",
			Rating:   5,
			Comment:  "Amazing tour! Sarah showed us parts of Madrid I never would have found on my own. Her knowledge of local history is incredible.",
			Trip:     "Madrid Historical Walking Tour",
			Date:     "2024-12-15",
		},
		{
			UserID:   "user_2",
			UserName: "Lisa Chen",
			Rating:   5,
			Comment:  "The desert safari with Ahmed was the highlight of our Dubai trip. Professional photographer and excellent guide!",
			Trip:     "Dubai Desert Adventure",
			Date:     "2024-12-10",
		},
		{
			UserID:   "user_3",
			UserName: "Michael Brown",
			Rating:   5,
			Comment:  "Hiroshi provided deep insights into Japanese culture and traditions. The temple tour was spiritually enriching.",
			Trip:     "Kyoto Temple Experience",
			Date:     "2024-12-08",
		},
	}
}
