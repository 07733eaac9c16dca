package test_utils

import (
	"encoding/json"
	"testing"

	"opensourcetogether/internal/util/errs"

	"github.com/stretchr/testify/assert"
)

// AssertErrorCode checks that the response carries the error envelope with code.
func AssertErrorCode(t *testing.T, response *TestResponse, code string) errs.ErrorResponse {
	var body errs.ErrorResponse
	err := json.Unmarshal(response.Body, &body)
	assert.NoError(t, err, "response is not an error envelope: %s", string(response.Body))

	assert.Equal(t, response.StatusCode, body.HTTPStatus)
	assert.Equal(t, code, body.Error.Code, "unexpected error code, body: %s", string(response.Body))

	return body
}
