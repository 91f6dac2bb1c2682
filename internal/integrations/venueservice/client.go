package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с VenueService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourt получает площадку по ID
func (c *Client) GetCourt(ctx context.Context, courtID int64) (*Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%d", c.baseURL, courtID)

	var court Court
	if err := c.getJSON(ctx, url, &court, ErrCourtNotFound); err != nil {
		return nil, err
	}

	return &court, nil
}

// GetVenue получает клуб по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	var venue Venue
	if err := c.getJSON(ctx, url, &venue, ErrVenueNotFound); err != nil {
		return nil, err
	}

	return &venue, nil
}

// ListCourtsByOwner получает площадки всех клубов владельца
func (c *Client) ListCourtsByOwner(ctx context.Context, ownerUserID int64) ([]Court, error) {
	url := fmt.Sprintf("%s/internal/owners/%d/courts", c.baseURL, ownerUserID)

	var courts []Court
	if err := c.getJSON(ctx, url, &courts, ErrVenueNotFound); err != nil {
		return nil, err
	}

	return courts, nil
}

// GetCourtOwner получает клуб и площадку одним вызовом
// Используется для проверки, что действие выполняет владелец клуба
func (c *Client) GetCourtOwner(ctx context.Context, courtID int64) (*Court, *Venue, error) {
	court, err := c.GetCourt(ctx, courtID)
	if err != nil {
		return nil, nil, err
	}

	venue, err := c.GetVenue(ctx, court.VenueID)
	if err != nil {
		return nil, nil, err
	}

	return court, venue, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
