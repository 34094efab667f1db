package request

import "time"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams carries the shared pagination query parameters.
type ListParams struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// ParseMonth parses a YYYY-MM month and returns its first day at UTC midnight.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01", s, time.UTC)
}
