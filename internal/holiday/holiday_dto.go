package holiday

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}
