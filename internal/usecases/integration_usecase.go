package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
)

// connectionTestTimeout bounds the whole probe, DNS included.
const connectionTestTimeout = 10 * time.Second

// IntegrationUsecase probes external systems a site is connected to.
type IntegrationUsecase struct {
	httpClient *http.Client
}

// NewIntegrationUsecase creates a new integration usecase
func NewIntegrationUsecase() *IntegrationUsecase {
	return &IntegrationUsecase{
		httpClient: &http.Client{Timeout: connectionTestTimeout},
	}
}

// TestConnection probes the site's WordPress REST endpoint. Reachability
// outcomes, including timeouts, come back in the result rather than as
// errors; only a misconfigured site is an error.
func (u *IntegrationUsecase) TestConnection(ctx context.Context, site *entities.Site) (*entities.ConnectionTestResult, error) {
	if !site.WordpressURL.Valid || site.WordpressURL.String == "" {
		return nil, domainerrors.ValidationError("site has no WordPress URL configured")
	}

	url := strings.TrimRight(site.WordpressURL.String, "/") + "/wp-json"

	ctx, cancel := context.WithTimeout(ctx, connectionTestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domainerrors.ValidationError("invalid WordPress URL")
	}

	start := time.Now()
	resp, err := u.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &entities.ConnectionTestResult{
				OK:      false,
				Message: fmt.Sprintf("connection timed out after %s", connectionTestTimeout),
				Latency: latency,
			}, nil
		}
		return &entities.ConnectionTestResult{
			OK:      false,
			Message: "connection failed: " + err.Error(),
			Latency: latency,
		}, nil
	}
	defer resp.Body.Close()

	result := &entities.ConnectionTestResult{
		StatusCode: resp.StatusCode,
		Latency:    latency,
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.OK = true
		result.Message = "connection successful"
	} else {
		result.Message = fmt.Sprintf("endpoint responded with status %d", resp.StatusCode)
	}
	return result, nil
}
