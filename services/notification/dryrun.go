package notification

import (
	"context"
	"fmt"

	"restaurant-reservation/logger"
	notificationModel "restaurant-reservation/models/notification"
)

// dryRunAdapter writes the message to the application log instead of a
// provider. It is only used when NOTIFY_DRY_RUN=true and every delivery-log
// entry it produces names "dryrun" as the provider, so a simulated send can
// never be mistaken for a real one.
type dryRunAdapter struct{}

func (dryRunAdapter) Provider() string {
	return notificationModel.ProviderDryRun
}

func (dryRunAdapter) Send(ctx context.Context, msg Message) error {
	logger.Info(fmt.Sprintf("DRY RUN %s to %s: %s", msg.Channel, msg.Recipient, msg.Body))
	return nil
}
