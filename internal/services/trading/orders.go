package trading

import (
	"context"
	"fmt"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
)

// HTTPOrderGateway submits orders to the trading service.
type HTTPOrderGateway struct {
	baseURL string
	client  *xhttp.Client
}

func NewHTTPOrderGateway(cfg *config.Config) *HTTPOrderGateway {
	timeout := cfg.Trading.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPOrderGateway{
		baseURL: cfg.Trading.BaseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// CreateOrder posts the request. A 2xx means accepted (the body is ignored);
// anything else surfaces as a *RemoteError whose Body carries the server's
// message.
func (g *HTTPOrderGateway) CreateOrder(ctx context.Context, req *models.TradeRequest) error {
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    g.baseURL + "/orders",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: req,
	}, nil)
	if err != nil {
		return fmt.Errorf("post orders: %w", err)
	}
	return nil
}

var _ domsvc.OrderGateway = (*HTTPOrderGateway)(nil)
