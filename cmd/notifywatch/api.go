package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	notifications_models "opensourcetogether/internal/features/notifications/models"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
)

const (
	apiPrefix      = "/api/v1"
	unreadPageSize = 100
)

type apiClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

func newAPIClient(server, token string) (*apiClient, error) {
	baseURL, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("server URL must be http or https, got %q", server)
	}

	return &apiClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Unread pages through /notifications/unread until it holds the receiver's
// whole unread set.
func (c *apiClient) Unread(ctx context.Context) ([]*notifications_models.Notification, error) {
	notifications := make([]*notifications_models.Notification, 0)
	seen := make(map[uuid.UUID]struct{})

	for offset := 0; ; {
		var page notifications_dto.UnreadNotificationsResponseDTO
		path := fmt.Sprintf("/notifications/unread?limit=%d&offset=%d", unreadPageSize, offset)
		if err := c.do(ctx, http.MethodGet, path, &page); err != nil {
			return nil, err
		}

		for _, notification := range page.Notifications {
			if _, ok := seen[notification.ID]; ok {
				continue
			}
			seen[notification.ID] = struct{}{}
			notifications = append(notifications, notification)
		}

		offset += len(page.Notifications)
		if len(page.Notifications) == 0 || int64(offset) >= page.UnreadCount {
			return notifications, nil
		}
	}
}

func (c *apiClient) MarkRead(ctx context.Context, id uuid.UUID) (*notifications_models.Notification, error) {
	var notification notifications_models.Notification
	if err := c.do(ctx, http.MethodPatch, "/notifications/"+id.String()+"/read", &notification); err != nil {
		return nil, err
	}

	return &notification, nil
}

func (c *apiClient) MarkAllRead(ctx context.Context) (int, error) {
	var response notifications_dto.MarkAllReadResponseDTO
	if err := c.do(ctx, http.MethodPatch, "/notifications/read-all", &response); err != nil {
		return 0, err
	}

	return response.Updated, nil
}

// StreamURL is the WebSocket endpoint with the token in the query string,
// since browsers and most dialers cannot set headers on the upgrade.
func (c *apiClient) StreamURL() string {
	streamURL := *c.baseURL
	if streamURL.Scheme == "https" {
		streamURL.Scheme = "wss"
	} else {
		streamURL.Scheme = "ws"
	}
	streamURL.Path = strings.TrimSuffix(streamURL.Path, "/") + apiPrefix + "/notifications/ws"
	streamURL.RawQuery = url.Values{"token": {c.token}}.Encode()

	return streamURL.String()
}

func (c *apiClient) do(ctx context.Context, method, path string, out any) error {
	requestURL := *c.baseURL
	path, query, _ := strings.Cut(path, "?")
	requestURL.Path = strings.TrimSuffix(requestURL.Path, "/") + apiPrefix + path
	requestURL.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, method, requestURL.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errorResponse errs.ErrorResponse
		if json.Unmarshal(body, &errorResponse) == nil && errorResponse.Error.Code != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, errorResponse.Error.Message, errorResponse.Error.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	return nil
}
