package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	Cookie         *http.Cookie
	ExpectedStatus int
}

type TestResponse struct {
	Body       []byte
	StatusCode int
	Headers    http.Header
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	response := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshal(t, response, responseStruct)
	return response
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	response := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, response, responseStruct)
	return response
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	response := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, response, responseStruct)
	return response
}

func MakePatchRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPatch,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePatchRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) *TestResponse {
	response := MakePatchRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, response, responseStruct)
	return response
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	var requestBody *bytes.Buffer
	switch body := options.Body.(type) {
	case nil:
		requestBody = bytes.NewBuffer(nil)
	case string:
		requestBody = bytes.NewBufferString(body)
	default:
		bodyJSON, err := json.Marshal(body)
		assert.NoError(t, err, "failed to marshal request body")
		requestBody = bytes.NewBuffer(bodyJSON)
	}

	req, err := http.NewRequest(options.Method, options.URL, requestBody)
	assert.NoError(t, err, "failed to create request")

	if options.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}
	if options.Cookie != nil {
		req.AddCookie(options.Cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(t, options.ExpectedStatus, w.Code,
			"unexpected status for %s %s, body: %s", options.Method, options.URL, w.Body.String())
	}

	return &TestResponse{
		Body:       w.Body.Bytes(),
		StatusCode: w.Code,
		Headers:    w.Header(),
	}
}

func unmarshal(t *testing.T, response *TestResponse, responseStruct any) {
	if responseStruct == nil {
		return
	}

	err := json.Unmarshal(response.Body, responseStruct)
	assert.NoError(t, err, "failed to unmarshal response body: %s", string(response.Body))
}
