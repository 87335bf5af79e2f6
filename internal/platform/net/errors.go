package net

import (
	"net/http"

	perr "vidtally/internal/platform/errors"
)

// HTTPStatus picks the response status for err. Project error kinds map
// to their canonical statuses, nil is plain 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
