package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moazam110/PaaniPlant-sub001/internal/logger"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	"github.com/moazam110/PaaniPlant-sub001/internal/services"
	"go.uber.org/zap"
)

const DefaultPollInterval = 10 * time.Second

// Poller keeps a dashboard client's view of the delivery request list fresh by
// periodically fetching it from the server. Every fetch is tagged with an
// increasing version before the request goes out; a response is applied only
// when no newer one has landed, so a slow, stale poll can never overwrite
// fresher data. Polling stops when the context is cancelled.
type Poller struct {
	endpoint    string
	interval    time.Duration
	client      *http.Client
	nextVersion uint64

	mu          sync.Mutex
	lastApplied uint64
	snapshot    []models.DeliveryRequest
}

func NewPoller(endpoint string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		endpoint: strings.TrimRight(endpoint, "/"),
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Run polls until the context is cancelled. Each refresh runs in its own
// goroutine so a slow response never delays the next tick.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.Refresh(ctx)
		}
	}
}

// Refresh performs a single poll and applies the response unless a newer one
// has already been applied.
func (p *Poller) Refresh(ctx context.Context) {
	version := atomic.AddUint64(&p.nextVersion, 1)

	requests, err := p.fetchRequests(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Log.Warn("failed to refresh delivery requests", zap.Error(err))
		}
		return
	}

	p.apply(version, requests)
}

func (p *Poller) apply(version uint64, requests []models.DeliveryRequest) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if version <= p.lastApplied {
		return false
	}

	p.lastApplied = version
	p.snapshot = requests
	return true
}

// Snapshot returns a copy of the most recently applied request list.
func (p *Poller) Snapshot() []models.DeliveryRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := make([]models.DeliveryRequest, len(p.snapshot))
	copy(snapshot, p.snapshot)
	return snapshot
}

// Display returns the snapshot in dashboard order, filtered by the query.
func (p *Poller) Display(query string) []models.DeliveryRequest {
	return services.FilterRequests(services.SortForDisplay(p.Snapshot()), query)
}

func (p *Poller) fetchRequests(ctx context.Context) ([]models.DeliveryRequest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/delivery-requests", p.endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delivery requests: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from delivery request list", res.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(res.Body); err != nil {
		return nil, fmt.Errorf("failed to read from response body: %w", err)
	}

	var requests []models.DeliveryRequest
	if err := json.Unmarshal(buf.Bytes(), &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery requests: %w", err)
	}

	return requests, nil
}
