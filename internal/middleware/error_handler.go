package middleware

import (
	"errors"
	"net/http"

	"cur8tr/pkg/logger"

	jsonres "cur8tr/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escaped the handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		logger.Error("Unhandled error", err, "path", c.Request().URL.Path)
	}

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(code)
	} else {
		respErr = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
	}
	if respErr != nil {
		logger.Error("Failed to write error response", respErr)
	}
}
