package staffservice

// Provider модель провайдера из StaffService
type Provider struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"full_name"`
	Specialty *string `json:"specialty,omitempty"`
	IsActive  bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
