// Package notification publishes coverage-request events to RabbitMQ.
// Publishing is fire-and-forget from the saga's point of view: errors are
// logged and returned so callers can record a zero notified count without
// interrupting the booking flow.
package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fieldserve/booking_backend/internal/core/domain"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds the broker connection settings.
type Config struct {
	URL       string
	QueueName string
}

// CoverageRequestEvent is the payload broadcast to candidate agents when a
// reservation has no direct coverage match. It carries enough information for
// downstream consumers to contact agents without querying the primary
// database.
type CoverageRequestEvent struct {
	ReservationID string          `json:"reservation_id"`
	LocationCode  string          `json:"location_code"`
	Candidates    []CandidateInfo `json:"candidates"`
	RequestedAt   string          `json:"requested_at"`
}

// CandidateInfo identifies one notified agent.
type CandidateInfo struct {
	AgentID     string `json:"agent_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type rabbitNotifier struct {
	url       string
	queueName string
}

// NewRabbitNotifier creates a CandidateNotifier that publishes persistent
// JSON messages to a durable queue.
func NewRabbitNotifier(cfg Config) portssvc.CandidateNotifier {
	queueName := cfg.QueueName
	if queueName == "" {
		queueName = "coverage.request"
	}
	return &rabbitNotifier{url: cfg.URL, queueName: queueName}
}

// Ensure rabbitNotifier implements the port
var _ portssvc.CandidateNotifier = (*rabbitNotifier)(nil)

// NotifyCandidates publishes one coverage-request event naming every
// candidate and returns the number of candidates it covered.
func (n *rabbitNotifier) NotifyCandidates(ctx context.Context, reservationID, locationCode string, candidates []domain.Candidate) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(candidates) == 0 {
		return 0, nil
	}

	conn, err := amqp.Dial(n.url)
	if err != nil {
		logger.Error("rabbitmq: dial failed", slog.String("error", err.Error()))
		return 0, err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: channel open failed", slog.String("error", err.Error()))
		return 0, err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		n.queueName, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		logger.Error("rabbitmq: queue declare failed", slog.String("error", err.Error()))
		return 0, err
	}

	event := CoverageRequestEvent{
		ReservationID: reservationID,
		LocationCode:  locationCode,
		Candidates:    make([]CandidateInfo, len(candidates)),
		RequestedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	for i, c := range candidates {
		event.Candidates[i] = CandidateInfo{
			AgentID:     c.AgentID,
			DisplayName: c.DisplayName,
			Email:       c.Email,
			Phone:       c.Phone,
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("rabbitmq: marshal event failed", slog.String("error", err.Error()))
		return 0, err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		n.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		logger.Error("rabbitmq: publish failed", slog.String("error", err.Error()))
		return 0, err
	}

	logger.Info("Coverage request broadcast",
		slog.String("reservation_id", reservationID),
		slog.Int("candidate_count", len(candidates)),
	)
	return len(candidates), nil
}
