package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"alfredoptarigan/ats-analyzer/internal/models"
)

const RoutingKeyAnalysisCompleted = "analysis.completed"

// AnalysisCompletedEvent is the message body published after an analysis is stored.
type AnalysisCompletedEvent struct {
	AnalysisID       string    `json:"analysis_id"`
	ResumeID         string    `json:"resume_id"`
	JobDescriptionID string    `json:"job_description_id"`
	OverallScore     int       `json:"overall_score"`
	MissingKeywords  []string  `json:"missing_keywords"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
}

type EventPublisher interface {
	PublishAnalysisCompleted(analysis *models.Analysis) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPPublisher dials RabbitMQ and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) PublishAnalysisCompleted(analysis *models.Analysis) error {
	body, err := json.Marshal(newAnalysisCompletedEvent(analysis))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(
		p.exchange,
		RoutingKeyAnalysisCompleted,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    analysis.AnalyzedAt,
			MessageId:    analysis.ID.String(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish analysis %s: %w", analysis.ID, err)
	}

	metrics.EventsPublished.Add(1)
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ch.Close()
	return p.conn.Close()
}

func newAnalysisCompletedEvent(a *models.Analysis) AnalysisCompletedEvent {
	missing := []string(a.MissingKeywords)
	if missing == nil {
		missing = []string{}
	}
	return AnalysisCompletedEvent{
		AnalysisID:       a.ID.String(),
		ResumeID:         a.ResumeID.String(),
		JobDescriptionID: a.JobDescriptionID.String(),
		OverallScore:     a.OverallScore,
		MissingKeywords:  missing,
		AnalyzedAt:       a.AnalyzedAt,
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when RABBITMQ_URL is empty.
func NewNoopPublisher() EventPublisher { return noopPublisher{} }

func (noopPublisher) PublishAnalysisCompleted(*models.Analysis) error { return nil }
func (noopPublisher) Close() error                                    { return nil }
