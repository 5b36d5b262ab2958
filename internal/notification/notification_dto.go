package notification

import "time"

type NotificationResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	ReferenceID   *string `json:"reference_id,omitempty"`
	ReferenceType *string `json:"reference_type,omitempty"`
	IsRead        bool    `json:"is_read"`
	CreatedAt     string  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReferenceID != nil {
		ref := n.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	resp.ReferenceType = n.ReferenceType
	return resp
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp
}
