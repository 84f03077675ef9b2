package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// forward issues one backend call and relays the backend's status and body
// to the client unchanged. Pass-through endpoints have no orchestration
// logic; their error translation lives entirely here and in the central
// error handler.
func forward(c echo.Context, client ports.BackendClient, backend domain.Backend, method, path string, query url.Values, body any) error {
	res, err := client.Do(c.Request().Context(), backend, method, path, query, body)
	if err != nil {
		return err
	}
	if len(res.Body) == 0 {
		return c.NoContent(res.Status)
	}
	if json.Valid(res.Body) {
		return c.JSONBlob(res.Status, res.Body)
	}
	return c.Blob(res.Status, echo.MIMETextPlainCharsetUTF8, res.Body)
}

// userQuery builds the user_id query parameter from verified claims. The
// identifier sent to a backend is never the client-supplied one.
func userQuery(claims *domain.Claims) url.Values {
	return url.Values{"user_id": {strconv.FormatInt(claims.Identity(), 10)}}
}

// requestBody reads the raw client payload for verbatim forwarding.
func requestBody(c echo.Context) (json.RawMessage, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
