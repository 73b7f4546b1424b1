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

// BlogCatalog is the remote port onto BlogService.
type BlogCatalog interface {
	SearchPosts(ctx context.Context, req models.BlogPostSearchRequest) (models.PagedResult[models.BlogPost], error)
	GetPost(ctx context.Context, postID string) (*models.BlogPost, error)
	DeletePost(ctx context.Context, postID, adminID string) error
	UpdatePostStatus(ctx context.Context, postID string, status models.BlogPostStatus, adminID string) error
	Statistics(ctx context.Context) (map[string]any, error)
}

// ReportCatalog is the reports half of BlogService.
type ReportCatalog interface {
	SearchReports(ctx context.Context, req models.ReportSearchRequest) ([]models.Report, error)
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
	UpdateReport(ctx context.Context, req models.UpdateReportRequest, adminID string) (*models.Report, error)
	DeleteReport(ctx context.Context, reportID string) error
	ReportStats(ctx context.Context) (map[string]any, error)
}

type BlogServiceClient struct {
	peerClient
}

func NewBlogServiceClient(baseURL string, timeout time.Duration, tokens auth.TokenProvider, log *zap.Logger) *BlogServiceClient {
	return &BlogServiceClient{peerClient: newPeerClient("blog-service", baseURL, timeout, tokens, log)}
}

type blogSearchResponse struct {
	Data       []models.BlogPost `json:"data"`
	Pagination struct {
		CurrentPage int `json:"currentPage"`
		PageSize    int `json:"pageSize"`
		TotalItems  int `json:"totalItems"`
	} `json:"pagination"`
}

func (c *BlogServiceClient) SearchPosts(ctx context.Context, req models.BlogPostSearchRequest) (models.PagedResult[models.BlogPost], error) {
	q := url.Values{}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.AuthorID != "" {
		q.Set("authorId", req.AuthorID)
	}
	if req.Status != nil {
		q.Set("status", strconv.Itoa(int(*req.Status)))
	}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	if req.SortBy != "" {
		q.Set("sortBy", req.SortBy)
	}
	if req.SortOrder != "" {
		q.Set("sortOrder", req.SortOrder)
	}
	if req.DateFrom != nil {
		q.Set("dateFrom", req.DateFrom.UTC().Format(time.RFC3339))
	}
	if req.DateTo != nil {
		q.Set("dateTo", req.DateTo.UTC().Format(time.RFC3339))
	}

	path := "/api/BlogPosts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp blogSearchResponse
	if err := c.do(ctx, "search_posts", http.MethodGet, path, nil, &resp); err != nil {
		return models.PagedResult[models.BlogPost]{}, err
	}
	p := resp.Pagination
	return models.NewPagedResult(resp.Data, p.CurrentPage, p.PageSize, p.TotalItems), nil
}

func (c *BlogServiceClient) GetPost(ctx context.Context, postID string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.do(ctx, "get_post", http.MethodGet, "/api/BlogPosts/"+url.PathEscape(postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *BlogServiceClient) DeletePost(ctx context.Context, postID, adminID string) error {
	return c.do(ctx, "delete_post", http.MethodDelete, "/api/BlogPosts/"+url.PathEscape(postID), nil, nil)
}

func (c *BlogServiceClient) UpdatePostStatus(ctx context.Context, postID string, status models.BlogPostStatus, adminID string) error {
	body := map[string]any{
		"status":  int(status),
		"adminId": adminID,
	}
	return c.do(ctx, "update_post_status", http.MethodPut, "/api/BlogPosts/"+url.PathEscape(postID), body, nil)
}

func (c *BlogServiceClient) Statistics(ctx context.Context) (map[string]any, error) {
	stats := map[string]any{}
	if err := c.do(ctx, "content_statistics", http.MethodGet, "/api/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *BlogServiceClient) SearchReports(ctx context.Context, req models.ReportSearchRequest) ([]models.Report, error) {
	q := url.Values{}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	if req.Status != nil {
		q.Set("status", strconv.Itoa(int(*req.Status)))
	}

	path := "/api/Reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var reports []models.Report
	if err := c.do(ctx, "search_reports", http.MethodGet, path, nil, &reports); err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

func (c *BlogServiceClient) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	if err := c.do(ctx, "get_report", http.MethodGet, "/api/Reports/"+url.PathEscape(reportID), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReport sends the review; BlogService stamps reviewedBy from adminId.
func (c *BlogServiceClient) UpdateReport(ctx context.Context, req models.UpdateReportRequest, adminID string) (*models.Report, error) {
	body := map[string]any{
		"status":  int(req.Status),
		"adminId": adminID,
	}
	if req.AdminNotes != "" {
		body["adminNotes"] = req.AdminNotes
	}
	if req.UserBanned != nil {
		body["userBanned"] = *req.UserBanned
	}
	if req.ContentRemoved != nil {
		body["contentRemoved"] = *req.ContentRemoved
	}

	var report models.Report
	if err := c.do(ctx, "update_report", http.MethodPut, "/api/Reports/"+url.PathEscape(req.ReportID), body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *BlogServiceClient) DeleteReport(ctx context.Context, reportID string) error {
	return c.do(ctx, "delete_report", http.MethodDelete, "/api/Reports/"+url.PathEscape(reportID), nil, nil)
}

func (c *BlogServiceClient) ReportStats(ctx context.Context) (map[string]any, error) {
	stats := map[string]any{}
	if err := c.do(ctx, "report_stats", http.MethodGet, "/api/Reports/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
