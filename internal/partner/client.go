// Package partner ingests notary appointment state for partner-managed
// properties from the partner's read-only feed.
package partner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jsteiner/grundwerk/internal/notary"
)

const userAgent = "grundwerk-sync"

// Client fetches appointment state from the partner feed.
type Client struct {
	httpClient *http.Client
	apiKey     string

	// Overridable URL for testing.
	feedURL string
}

// NewClient creates a feed client for the given base URL.
func NewClient(feedURL, apiKey string) (*Client, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("partner feed URL is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		feedURL:    feedURL,
	}, nil
}

// feedAppointment is the partner's wire format for one appointment.
type feedAppointment struct {
	PropertyID          int64       `json:"property_id"`
	Status              string      `json:"status"`
	ProposedDates       []time.Time `json:"proposed_dates"`
	SelectedDate        *time.Time  `json:"selected_date"`
	ConfirmedDate       *time.Time  `json:"confirmed_date"`
	NotaryName          string      `json:"notary_name"`
	NotaryContact       string      `json:"notary_contact"`
	CustomerConfirmed   bool        `json:"customer_confirmed"`
	BackofficeConfirmed bool        `json:"backoffice_confirmed"`
	DocumentsPrepared   bool        `json:"documents_prepared"`
}

// FetchAppointment pulls the current appointment state for one property.
func (c *Client) FetchAppointment(ctx context.Context, propertyID int64) (*notary.Appointment, error) {
	url := fmt.Sprintf("%s/appointments/%d", c.feedURL, propertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment for property %d: %w", propertyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no partner appointment for property %d: %w", propertyID, notary.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var feed feedAppointment
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}

	return &notary.Appointment{
		PropertyID:          feed.PropertyID,
		Status:              notary.Status(feed.Status),
		ProposedDates:       feed.ProposedDates,
		SelectedDate:        feed.SelectedDate,
		ConfirmedDate:       feed.ConfirmedDate,
		NotaryName:          feed.NotaryName,
		NotaryContact:       feed.NotaryContact,
		CustomerConfirmed:   feed.CustomerConfirmed,
		BackofficeConfirmed: feed.BackofficeConfirmed,
		DocumentsPrepared:   feed.DocumentsPrepared,
		ManagedBy:           notary.ManagedPartner,
	}, nil
}

// Syncer pulls feed state and stores it through the notary service. The
// feed is one-way: local state is overwritten, never pushed back.
type Syncer struct {
	client *Client
	svc    *notary.Service
}

// NewSyncer creates a syncer.
func NewSyncer(client *Client, svc *notary.Service) *Syncer {
	return &Syncer{client: client, svc: svc}
}

// SyncProperty fetches and applies the partner's appointment state for one
// property. Invariants are validated on ingress; invalid feed states are
// rejected without touching stored data.
func (s *Syncer) SyncProperty(ctx context.Context, propertyID int64) (*notary.Appointment, error) {
	appt, err := s.client.FetchAppointment(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return s.svc.Sync(ctx, appt, time.Now())
}
