package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"leavedesk/internal/events"
	"leavedesk/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	gateway notification.Gateway,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave request event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := renderNotification(event)
		for _, addr := range event.Recipients {
			if addr == "" {
				continue
			}
			// Best-effort delivery: log and keep going, the state change
			// already committed.
			if err := gateway.Notify(ctx, addr, subject, body); err != nil {
				log.Warn("deliver leave notification failed",
					zap.String("request_id", event.RequestID),
					zap.String("recipient", addr),
					zap.Error(err),
				)
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification processed",
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.Int("recipients", len(event.Recipients)),
		)
	}
}

func renderNotification(event events.LeaveRequestEvent) (subject, body string) {
	switch event.EventType {
	case events.LeaveRequestCreated:
		subject = "Leave Request Submitted"
	case events.LeaveRequestUpdated:
		subject = "Leave Request Updated"
	case events.LeaveRequestApproved:
		subject = "Leave Request Approved"
	case events.LeaveRequestAutoApproved:
		subject = "Leave Auto-Approved"
	case events.LeaveRequestRejected:
		subject = "Leave Request Rejected"
	default:
		subject = "Leave Request Notification"
	}

	body = fmt.Sprintf(
		"<p>Leave request for <strong>%s</strong> is now <strong>%s</strong>.</p>"+
			"<p><strong>Type:</strong> %s</p>"+
			"<p><strong>From:</strong> %s</p>"+
			"<p><strong>To:</strong> %s</p>"+
			"<p><strong>Days:</strong> %d</p>",
		event.OwnerName, event.Status, event.LeaveType,
		event.StartDate, event.EndDate, event.TotalDays,
	)
	return subject, body
}
