package notification

import (
	"context"
	"fmt"

	"pixshare/internal/logger"

	"go.uber.org/zap"
)

// Channel selects the delivery transport.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Gateway delivers short messages (verification codes) to users. Delivery is
// best-effort: failures are logged by implementations and must never fail the
// request that triggered them.
type Gateway interface {
	Send(ctx context.Context, channel Channel, destination, subject, body string) error
}

// Dispatcher fans out to the configured channel senders. Sends run in the
// background, off the critical path of the triggering request.
type Dispatcher struct {
	email *EmailSender
	sms   *SMSSender
}

func NewDispatcher(email *EmailSender, sms *SMSSender) *Dispatcher {
	return &Dispatcher{email: email, sms: sms}
}

func (d *Dispatcher) Send(ctx context.Context, channel Channel, destination, subject, body string) error {
	go func() {
		var err error
		switch channel {
		case ChannelEmail:
			err = d.email.Send(destination, subject, body)
		case ChannelSMS:
			err = d.sms.Send(destination, body)
		default:
			err = fmt.Errorf("unknown notification channel: %s", channel)
		}

		if err != nil {
			logger.Warn("Notification dispatch failed",
				zap.String("channel", string(channel)),
				zap.String("destination", destination),
				zap.Error(err),
			)
			return
		}

		logger.Debug("Notification dispatched",
			zap.String("channel", string(channel)),
			zap.String("destination", destination),
		)
	}()

	return nil
}
