package rest

import (
	"errors"
	"net/http"

	"cur8tr/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON writes err with its mapped status. Internal failures are not
// echoed back to the client.
func errorJSON(c echo.Context, err error) error {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	return c.JSON(status, ResponseError{Message: message})
}

// viewerID is the authenticated caller, or "" for anonymous requests.
func viewerID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
