package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/models"
	"go.uber.org/zap"
)

// UserDirectory is the remote port onto UserService.
type UserDirectory interface {
	SearchUsers(ctx context.Context, req models.UserSearchRequest) (models.PagedResult[models.UserOverview], error)
	GetUser(ctx context.Context, userID string) (*models.UserDetail, error)
	BanUser(ctx context.Context, req models.BanUserRequest, adminID string) error
	UnbanUser(ctx context.Context, req models.UnbanUserRequest, adminID string) error
	UpdateUser(ctx context.Context, req models.UpdateUserRequest, adminID string) (*models.UserDetail, error)
	ForcePasswordReset(ctx context.Context, req models.ForcePasswordResetRequest, adminID string) error
	Statistics(ctx context.Context) (map[string]any, error)
	CreateNotification(ctx context.Context, n models.Notification) error
}

// UserServiceClient talks to the UserService internal API.
type UserServiceClient struct {
	peerClient
}

func NewUserServiceClient(baseURL string, timeout time.Duration, tokens auth.TokenProvider, log *zap.Logger) *UserServiceClient {
	return &UserServiceClient{peerClient: newPeerClient("user-service", baseURL, timeout, tokens, log)}
}

type userSearchResponse struct {
	Users      []models.UserOverview `json:"users"`
	TotalCount int                   `json:"totalCount"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
}

func (c *UserServiceClient) SearchUsers(ctx context.Context, req models.UserSearchRequest) (models.PagedResult[models.UserOverview], error) {
	q := url.Values{}
	if req.SearchTerm != "" {
		q.Set("searchTerm", req.SearchTerm)
	}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	if req.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*req.IsActive))
	}
	if req.IsBanned != nil {
		q.Set("isBanned", strconv.FormatBool(*req.IsBanned))
	}

	path := "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp userSearchResponse
	if err := c.do(ctx, "search_users", http.MethodGet, path, nil, &resp); err != nil {
		return models.PagedResult[models.UserOverview]{}, err
	}
	return models.NewPagedResult(resp.Users, resp.Page, resp.PageSize, resp.TotalCount), nil
}

func (c *UserServiceClient) GetUser(ctx context.Context, userID string) (*models.UserDetail, error) {
	var user models.UserDetail
	if err := c.do(ctx, "get_user", http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserServiceClient) BanUser(ctx context.Context, req models.BanUserRequest, adminID string) error {
	body := struct {
		models.BanUserRequest
		AdminID string `json:"adminId"`
	}{req, adminID}
	return c.do(ctx, "ban_user", http.MethodPost, "/users/"+url.PathEscape(req.UserID)+"/ban", body, nil)
}

func (c *UserServiceClient) UnbanUser(ctx context.Context, req models.UnbanUserRequest, adminID string) error {
	body := struct {
		models.UnbanUserRequest
		AdminID string `json:"adminId"`
	}{req, adminID}
	return c.do(ctx, "unban_user", http.MethodPost, "/users/"+url.PathEscape(req.UserID)+"/unban", body, nil)
}

func (c *UserServiceClient) UpdateUser(ctx context.Context, req models.UpdateUserRequest, adminID string) (*models.UserDetail, error) {
	body := struct {
		models.UpdateUserRequest
		AdminID string `json:"adminId"`
	}{req, adminID}

	var user models.UserDetail
	if err := c.do(ctx, "update_user", http.MethodPut, "/users/"+url.PathEscape(req.UserID), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserServiceClient) ForcePasswordReset(ctx context.Context, req models.ForcePasswordResetRequest, adminID string) error {
	body := struct {
		models.ForcePasswordResetRequest
		AdminID string `json:"adminId"`
	}{req, adminID}
	return c.do(ctx, "force_password_reset", http.MethodPost, "/users/"+url.PathEscape(req.UserID)+"/force-password-reset", body, nil)
}

func (c *UserServiceClient) Statistics(ctx context.Context) (map[string]any, error) {
	stats := map[string]any{}
	if err := c.do(ctx, "user_statistics", http.MethodGet, "/users/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *UserServiceClient) CreateNotification(ctx context.Context, n models.Notification) error {
	return c.do(ctx, "create_notification", http.MethodPost, "/api/notifications", n, nil)
}
