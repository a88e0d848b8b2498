package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 512

// APIClient wraps Hertz Client for HTTP communication with the chatbot API
type APIClient struct {
	client  *client.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

var _ domain.Gateway = (*APIClient)(nil)

// NewAPIClient creates a new API client for baseURL, e.g. http://localhost:8000/api
func NewAPIClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*APIClient, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client:  c,
		baseURL: normalized,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// BaseURL returns the normalized API base URL
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// normalizeBaseURL adds a missing scheme and drops the trailing slash.
// The path is kept: the API is usually mounted under /api.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, strings.TrimRight(u.Path, "/")), nil
}

// do sends one request. in is encoded as the JSON body when non-nil; the
// response body is decoded into out when non-nil. Transport failures and
// non-2xx statuses come back as *domain.NetworkError.
func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	requestID := uuid.NewString()
	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if in != nil {
		body, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(body)
	}

	start := time.Now()
	err := c.client.DoTimeout(ctx, req, resp, c.timeout)
	logger := c.logger.With("request_id", requestID, "method", method, "path", path, "duration", time.Since(start))
	if err != nil {
		logger.Warn("request failed", "error", err)
		return &domain.NetworkError{Method: method, Path: path, Err: err}
	}

	status := resp.StatusCode()
	logger.Debug("request completed", "status", status)
	if status < 200 || status >= 300 {
		return &domain.NetworkError{
			Method:     method,
			Path:       path,
			StatusCode: status,
			Body:       errorDetail(resp.Body()),
		}
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal response of %s %s: %w", method, path, err)
	}
	return nil
}

// errorDetail extracts the "detail" field error bodies usually carry,
// falling back to the (truncated) raw body
func errorDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := sonic.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if b, err := sonic.MarshalString(payload.Detail); err == nil {
			return b
		}
	}

	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// Health probes GET /health
func (c *APIClient) Health(ctx context.Context) (*entity.HealthStatus, error) {
	var status entity.HealthStatus
	if err := c.do(ctx, consts.MethodGet, endpointHealth, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListAgents lists agents, optionally only the active ones
func (c *APIClient) ListAgents(ctx context.Context, activeOnly bool) ([]entity.Agent, error) {
	var agents []entity.Agent
	path := fmt.Sprintf("%s?active_only=%t", endpointAgents, activeOnly)
	if err := c.do(ctx, consts.MethodGet, path, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// CreateAgent creates an agent
func (c *APIClient) CreateAgent(ctx context.Context, in *domain.AgentInput) (*entity.Agent, error) {
	var agent entity.Agent
	if err := c.do(ctx, consts.MethodPost, endpointAgents, in, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// UpdateAgent replaces an agent's settings
func (c *APIClient) UpdateAgent(ctx context.Context, id int64, in *domain.AgentInput) (*entity.Agent, error) {
	var agent entity.Agent
	if err := c.do(ctx, consts.MethodPut, fmt.Sprintf(endpointAgentByID, id), in, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// DeleteAgent deletes an agent
func (c *APIClient) DeleteAgent(ctx context.Context, id int64) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointAgentByID, id), nil, nil)
}

// ListConversations lists conversation summaries
func (c *APIClient) ListConversations(ctx context.Context) ([]entity.Conversation, error) {
	var conversations []entity.Conversation
	if err := c.do(ctx, consts.MethodGet, endpointConversations, nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation fetches a conversation with its messages
func (c *APIClient) GetConversation(ctx context.Context, id int64) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointConversationByID, id), nil, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListConversationDataSources fetches the data-source calls made in a conversation
func (c *APIClient) ListConversationDataSources(ctx context.Context, id int64) ([]entity.DataSourceUsage, error) {
	var usage []entity.DataSourceUsage
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointConversationDSUsage, id), nil, &usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// DeleteConversation deletes a conversation
func (c *APIClient) DeleteConversation(ctx context.Context, id int64) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointConversationByID, id), nil, nil)
}

// ListDataSources lists the data-source catalog
func (c *APIClient) ListDataSources(ctx context.Context) ([]entity.DataSource, error) {
	var dataSources []entity.DataSource
	if err := c.do(ctx, consts.MethodGet, endpointDataSources, nil, &dataSources); err != nil {
		return nil, err
	}
	return dataSources, nil
}

// CreateDataSource creates a data source
func (c *APIClient) CreateDataSource(ctx context.Context, in *domain.DataSourceInput) (*entity.DataSource, error) {
	var ds entity.DataSource
	if err := c.do(ctx, consts.MethodPost, endpointDataSources, in, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// UpdateDataSource replaces a data source
func (c *APIClient) UpdateDataSource(ctx context.Context, id int64, in *domain.DataSourceInput) (*entity.DataSource, error) {
	var ds entity.DataSource
	if err := c.do(ctx, consts.MethodPut, fmt.Sprintf(endpointDataSourceByID, id), in, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// DeleteDataSource deletes a data source
func (c *APIClient) DeleteDataSource(ctx context.Context, id int64) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointDataSourceByID, id), nil, nil)
}

// TestDataSource asks the backend to fetch sample data from a data source
func (c *APIClient) TestDataSource(ctx context.Context, id int64) (*entity.DataSourceTestResult, error) {
	var result entity.DataSourceTestResult
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointDataSourceTest, id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAssignments lists an agent's data-source assignments
func (c *APIClient) ListAssignments(ctx context.Context, agentID int64) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointAgentDSs, agentID), nil, &assignments); err != nil {
		return nil, err
	}
	for i := range assignments {
		if assignments[i].AgentID == 0 {
			assignments[i].AgentID = agentID
		}
	}
	return assignments, nil
}

// CreateAssignment assigns a data source to an agent
func (c *APIClient) CreateAssignment(ctx context.Context, agentID int64, in *domain.AssignmentInput) (*entity.Assignment, error) {
	var assignment entity.Assignment
	if err := c.do(ctx, consts.MethodPost, fmt.Sprintf(endpointAgentDSs, agentID), in, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteAssignment removes a data source from an agent
func (c *APIClient) DeleteAssignment(ctx context.Context, agentID, dataSourceID int64) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointAgentDSByID, agentID, dataSourceID), nil, nil)
}

// ChatCompletion sends a test prompt to an agent
func (c *APIClient) ChatCompletion(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	var resp domain.ChatResponse
	if err := c.do(ctx, consts.MethodPost, endpointChatCompletion, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IsOffline reports whether err means the API could not be reached at all
func IsOffline(err error) bool {
	var netErr *domain.NetworkError
	return errors.As(err, &netErr) && netErr.StatusCode == 0
}
