package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

// ErrServerRejected is returned when the server answers a report with a
// non-success status.
var ErrServerRejected = errors.New("server rejected the report")

type httpReporter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPReporter builds the resty-backed server client used by the agent.
func NewHTTPReporter(cfg config.AgentServer, log *logger.Logger) Reporter {
	client := utils.NewHTTPClient()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.RequestTimeout)
	client.SetAuthToken(cfg.Token)

	return &httpReporter{
		client: client,
		logger: log,
	}
}

func (r *httpReporter) RegisterDrives(ctx context.Context, req models.RegisterDrivesRequest) (models.RegisterDrivesResponse, error) {
	var response models.RegisterDrivesResponse
	resp, err := r.request(ctx).SetBody(req).Post("/api/drives/register")
	if err != nil {
		return response, fmt.Errorf("register drives: %w", err)
	}
	if err = checkStatus(resp); err != nil {
		return response, err
	}

	if err = json.Unmarshal(resp.Body(), &response); err != nil {
		return response, fmt.Errorf("decode register response: %w", err)
	}

	return response, nil
}

func (r *httpReporter) SetAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResponse, error) {
	var response models.AvailabilityResponse
	resp, err := r.request(ctx).SetBody(req).Post("/api/drives/availability")
	if err != nil {
		return response, fmt.Errorf("set availability: %w", err)
	}
	if err = checkStatus(resp); err != nil {
		return response, err
	}

	if err = json.Unmarshal(resp.Body(), &response); err != nil {
		return response, fmt.Errorf("decode availability response: %w", err)
	}

	return response, nil
}

func (r *httpReporter) request(ctx context.Context) *resty.Request {
	return r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return fmt.Errorf("%w: http %d: %s", ErrServerRejected, resp.StatusCode(), resp.String())
}
