package venueservice

// Venue модель площадки из VenueService
type Venue struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	ManagerIDs []int64 `json:"managerIds"`
	Enabled    bool    `json:"enabled"`
}

// IsManager проверяет, входит ли пользователь в список менеджеров площадки
func (v *Venue) IsManager(userID int64) bool {
	for _, managerID := range v.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// Resource модель ресурса (корт, поле, зал) из VenueService
type Resource struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venueId"`
	Name    string `json:"name"`
	Sport   string `json:"sport"`
	Enabled bool   `json:"enabled"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
