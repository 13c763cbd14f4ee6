package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"steamdeals/scanner/internal/config"
	"steamdeals/scanner/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// SteamClient talks to the Steam web APIs. AppDetails is a single raw
// request with no retry of its own; retry policy lives one layer up in
// internal/fetch. AppList backs the one-time catalog ingestion.
type SteamClient interface {
	AppDetails(ctx context.Context, appID int) (*domain.AppDetails, error)
	AppList(ctx context.Context) ([]domain.App, error)
}

type steamClient struct {
	rl         ratelimit.Limiter
	config     config.SteamConfig
	httpClient *resty.Client
}

func NewSteamClient(cfg config.SteamConfig) SteamClient {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("User-Agent", "steamdeals-scanner/1.0").
		SetHeader("Accept", "application/json")

	// The storefront tolerates roughly 200 requests per 5 minutes; the
	// limiter paces requests well under that ceiling.
	return &steamClient{
		rl:         ratelimit.New(cfg.RequestsPerMinute, ratelimit.Per(time.Minute)),
		config:     cfg,
		httpClient: httpClient,
	}
}

func (c *steamClient) AppDetails(ctx context.Context, appID int) (*domain.AppDetails, error) {
	c.rl.Take()

	url := fmt.Sprintf("%s/api/appdetails?appids=%d&l=english", c.config.StoreBaseURL, appID)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appdetails for %d: %w", appID, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error for app %d: %d %s", appID, resp.StatusCode(), resp.Status())
	}

	// The storefront keys the envelope by the queried id.
	var envelope map[string]*domain.AppDetails
	if err := json.Unmarshal([]byte(resp.String()), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode appdetails for %d: %w", appID, err)
	}

	details, ok := envelope[strconv.Itoa(appID)]
	if !ok || details == nil {
		// Treat a missing key as a non-success envelope, not a fault.
		return &domain.AppDetails{}, nil
	}

	log.Debugf("Fetched appdetails for %d (success=%v)", appID, details.Success)
	return details, nil
}

func (c *steamClient) AppList(ctx context.Context) ([]domain.App, error) {
	c.rl.Take()

	url := fmt.Sprintf("%s/ISteamApps/GetAppList/v2/", c.config.APIBaseURL)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app list: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error fetching app list: %d %s", resp.StatusCode(), resp.Status())
	}

	var payload struct {
		AppList struct {
			Apps []domain.App `json:"apps"`
		} `json:"applist"`
	}
	if err := json.Unmarshal([]byte(resp.String()), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode app list: %w", err)
	}

	log.Infof("Fetched app list with %d entries", len(payload.AppList.Apps))
	return payload.AppList.Apps, nil
}
