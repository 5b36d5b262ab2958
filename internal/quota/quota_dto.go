package quota

type QuotaResponse struct {
	UserID    string `json:"user_id"`
	Year      int    `json:"year"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Pending   int    `json:"pending"`
	Remaining int    `json:"remaining"`
}

type SetConfigRequest struct {
	Year         int `json:"year" binding:"required,min=2000"`
	DefaultTotal int `json:"default_total" binding:"min=0"`
}

type SetTotalRequest struct {
	Year  int `json:"year" binding:"required,min=2000"`
	Total int `json:"total" binding:"min=0"`
}

func MapToQuotaResponse(q *LeaveQuota) QuotaResponse {
	return QuotaResponse{
		UserID:    q.UserID.String(),
		Year:      q.Year,
		Total:     q.Total,
		Used:      q.Used,
		Pending:   q.Pending,
		Remaining: q.Remaining,
	}
}
