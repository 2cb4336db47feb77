package notification

import (
	"context"

	"restaurant-reservation/apperrors"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsAdapter delivers through Amazon SNS: topic publish for email
// subscriptions, direct publish for SMS.
type snsAdapter struct {
	client   *sns.Client
	topicArn string
	channel  reservationModel.Channel
}

func newSNSAdapter(settings map[string]string, channel reservationModel.Channel) (*snsAdapter, error) {
	if channel == reservationModel.ChannelEmail && settings["topic_arn"] == "" {
		return nil, apperrors.Configuration("SNS email delivery requires topic_arn")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(settings["region"]),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings["access_key_id"], settings["secret_access_key"], ""),
		),
	)
	if err != nil {
		return nil, apperrors.Configuration("cannot build SNS client: %v", err)
	}

	return &snsAdapter{
		client:   sns.NewFromConfig(cfg),
		topicArn: settings["topic_arn"],
		channel:  channel,
	}, nil
}

func (a *snsAdapter) Provider() string {
	return notificationModel.ProviderSNS
}

func (a *snsAdapter) Send(ctx context.Context, msg Message) error {
	input := &sns.PublishInput{
		Message: aws.String(msg.Body),
	}

	if a.channel == reservationModel.ChannelEmail {
		input.TopicArn = aws.String(a.topicArn)
		input.Subject = aws.String(msg.Subject)
	} else {
		input.PhoneNumber = aws.String("+" + msg.Recipient)
	}

	if _, err := a.client.Publish(ctx, input); err != nil {
		return apperrors.Delivery(a.Provider(), err)
	}
	return nil
}
