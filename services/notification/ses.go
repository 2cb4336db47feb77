package notification

import (
	"context"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAdapter delivers email through Amazon SES.
type sesAdapter struct {
	client *sesv2.Client
	from   string
}

func newSESAdapter(settings map[string]string) (*sesAdapter, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(settings["region"]),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings["access_key_id"], settings["secret_access_key"], ""),
		),
	)
	if err != nil {
		return nil, apperrors.Configuration("cannot build SES client: %v", err)
	}

	return &sesAdapter{
		client: sesv2.NewFromConfig(cfg),
		from:   settings["from_email"],
	}, nil
}

func (a *sesAdapter) Provider() string {
	return notificationModel.ProviderSES
}

func (a *sesAdapter) Send(ctx context.Context, msg Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(a.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.Recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body)},
				},
			},
		},
	}

	if _, err := a.client.SendEmail(ctx, input); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}
