package notify

import (
	"context"
	"fmt"
	"strings"

	"rueating/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ServiceInterface defines the contract for sending order alerts.
type ServiceInterface interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

// SESService sends order alerts to the operations mailbox via Amazon SES.
type SESService struct {
	client *sesv2.Client
	from   string
	to     string
}

// NewSESService builds an SES-backed notifier using the default AWS
// credential chain.
func NewSESService(ctx context.Context, region, from, to string) (*SESService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("notify.NewSESService: %w", err)
	}
	return &SESService{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
		to:     to,
	}, nil
}

// OrderPlaced emails a summary of a freshly committed order.
func (s *SESService) OrderPlaced(ctx context.Context, order *models.Order) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Order %s for %s\n\n", order.OrderID, order.CustomerName)
	for _, line := range order.Lines {
		fmt.Fprintf(&body, "  %dx %s @ %.2f\n", line.Quantity, line.Name, line.UnitPrice)
	}
	fmt.Fprintf(&body, "\nTotal: %.2f\nTruck: %s\n", order.Total, order.TruckID)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{s.to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(fmt.Sprintf("New order %s", order.OrderID))},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body.String())},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("notify.OrderPlaced: %w", err)
	}
	return nil
}
