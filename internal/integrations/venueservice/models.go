package venueservice

// Court модель площадки из VenueService
type Court struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venue_id"`
	Name    string `json:"name"`
	Sport   string `json:"sport"`
}

// Venue модель клуба из VenueService
type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	OwnerUserID int64  `json:"owner_user_id"`
	OwnerEmail  string `json:"owner_email"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
