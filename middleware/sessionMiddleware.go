package middleware

import (
	"fmt"
	"net/http"
	"time"

	"varanno/api/contexts"
	"varanno/api/models/dtos"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a valid `id` path parameter naming a
	live session was provided
*/
func MandateSessionIdAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.VarannoContext)

		// check for id path parameter
		sessionId := c.Param("id")
		if len(sessionId) == 0 {
			// if no id was provided return an error
			return c.JSON(http.StatusBadRequest, &dtos.GeneralErrorResponseDto{
				Code:      400,
				Message:   "Bad Request",
				Timestamp: time.Now(),
				Errors: []dtos.GeneralError{
					{
						Message: "Missing session id",
					},
				},
			})
		}

		// verify sessionId is a valid UUID
		id, err := uuid.Parse(sessionId)
		if err != nil {
			fmt.Printf("Invalid session id %s\n", sessionId)

			return c.JSON(http.StatusBadRequest, &dtos.GeneralErrorResponseDto{
				Code:      400,
				Message:   "Bad Request",
				Timestamp: time.Now(),
				Errors: []dtos.GeneralError{
					{
						Message: fmt.Sprintf("Invalid session id %s - please provide a valid UUID", sessionId),
					},
				},
			})
		}

		session, ok := gc.SessionService.Get(id)
		if !ok {
			return c.JSON(http.StatusNotFound, &dtos.GeneralErrorResponseDto{
				Code:      404,
				Message:   "Not Found",
				Timestamp: time.Now(),
				Errors: []dtos.GeneralError{
					{
						Message: fmt.Sprintf("No session %s - it may have expired", sessionId),
					},
				},
			})
		}

		gc.Session = session
		return next(c)
	}
}
