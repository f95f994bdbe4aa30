package errors

import (
	"net/http"
	"time"

	"varanno/api/models/dtos"
)

/*
	Utility functions to facillitate returning error responses to HTTP clients
*/

// -- Simplest: 1 error with message
func CreateSimpleBadRequest(message string) dtos.GeneralErrorResponseDto {
	return createSimple(http.StatusBadRequest, "Bad Request", message)
}
func CreateSimpleNotFound(message string) dtos.GeneralErrorResponseDto {
	return createSimple(http.StatusNotFound, "Not Found", message)
}
func CreateSimpleInternalServerError(message string) dtos.GeneralErrorResponseDto {
	return createSimple(http.StatusInternalServerError, "Internal Server Error", message)
}
func CreateSimpleRequestEntityTooLarge(message string) dtos.GeneralErrorResponseDto {
	return createSimple(http.StatusRequestEntityTooLarge, "Request Entity Too Large", message)
}
func CreateSimpleServiceUnavailable(message string) dtos.GeneralErrorResponseDto {
	return createSimple(http.StatusServiceUnavailable, "Service Unavailable", message)
}

// -- tool failures carry the tool's own output as a second error entry
func CreateToolFailure(message string, toolOutput string) dtos.GeneralErrorResponseDto {
	resp := createSimple(http.StatusUnprocessableEntity, "Unprocessable Entity", message)
	if toolOutput != "" {
		resp.Errors = append(resp.Errors, dtos.GeneralError{Message: toolOutput})
	}
	return resp
}

func createSimple(code int, status string, message string) dtos.GeneralErrorResponseDto {
	return dtos.GeneralErrorResponseDto{
		Code:      code,
		Message:   status,
		Timestamp: time.Now(),
		Errors: []dtos.GeneralError{
			{
				Message: message,
			},
		},
	}
}

// --
