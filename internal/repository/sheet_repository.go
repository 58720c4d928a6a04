// Package repository holds the outbound sides of the bridge: the sheet
// endpoint the forwarder posts to and the UDP link the gateway writes to.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yskddk/smart-hive-udp-server/internal/models"
)

// SheetRepository submits sensor records to the remote logging endpoint.
type SheetRepository interface {
	Submit(ctx context.Context, record models.SensorRecord) error
}

// FormRepository posts records as web forms to a fixed endpoint.
type FormRepository struct {
	client   *resty.Client
	endpoint string
}

// NewFormRepository creates a FormRepository. A zero timeout means none.
func NewFormRepository(endpoint string, timeout time.Duration) *FormRepository {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &FormRepository{
		client:   client,
		endpoint: endpoint,
	}
}

// Endpoint returns the URL records are posted to.
func (r *FormRepository) Endpoint() string {
	return r.endpoint
}

// Submit posts the record once. Transport errors and non-2xx statuses are
// returned as forwarding failures; nothing is retried.
func (r *FormRepository) Submit(ctx context.Context, record models.SensorRecord) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetFormDataFromValues(record.Form()).
		Post(r.endpoint)
	if err != nil {
		return models.NewBridgeError(models.ErrorCodeForwardingFailure, "post to sheet endpoint",
			fmt.Errorf("%w: %v", models.ErrForwardingFailure, err))
	}
	if resp.IsError() {
		return models.NewBridgeError(models.ErrorCodeForwardingFailure, "post to sheet endpoint",
			fmt.Errorf("%w: status %s", models.ErrForwardingFailure, resp.Status()))
	}
	return nil
}
