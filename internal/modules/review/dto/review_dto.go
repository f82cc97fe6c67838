package dto

import "time"

// ModifyEventRequest overwrites the submission fields of a pending event.
type ModifyEventRequest struct {
	Name     string    `json:"name" binding:"required,max=255"`
	Category string    `json:"category" binding:"required,max=100"`
	Date     time.Time `json:"date" binding:"required"`
	Location string    `json:"location" binding:"required,max=255"`
	Link     *string   `json:"link" binding:"omitempty,url"`
}

type ReviewStatsResponse struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}
