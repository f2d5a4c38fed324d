package dto

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Paginated is the envelope for every paginated list.
type Paginated[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}

func NewPaginated[T any](results []T, total int64, page, pageSize int) *Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}
	if results == nil {
		results = []T{}
	}
	return &Paginated[T]{
		Count:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Results:    results,
	}
}

// MessageResponse is the plain {success, message} body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FormatDate renders a date column as YYYY-MM-DD.
func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

// ParseDate accepts YYYY-MM-DD. An empty string yields nil.
func ParseDate(s string) (*datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	d := datatypes.Date(t)
	return &d, nil
}
