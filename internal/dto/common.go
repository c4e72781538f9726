package dto

import "github.com/gofiber/fiber/v2"

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    int         `json:"code"`
}

func Success(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data, Code: fiber.StatusOK}
}

func Fail(message string, code int) APIResponse {
	return APIResponse{Success: false, Message: message, Data: nil, Code: code}
}

// PagedResponse wraps a 1-indexed page of results.
type PagedResponse struct {
	Items       interface{} `json:"items"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
	TotalItems  int64       `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
}

func NewPagedResponse(items interface{}, page, size int, total int64) PagedResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResponse{
		Items:       items,
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  totalPages,
	}
}
