// Package notifier dispatches account emails through a message broker. A
// separate delivery worker owns templating and the actual SMTP session.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.Notifier = (*NATS)(nil)

// Publisher is the subset of the NATS connection the notifier uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes email jobs as JSON messages.
type NATS struct {
	conn          Publisher
	subjectPrefix string
	now           func() time.Time
}

// NewNATS creates a notifier publishing to subjects under the given prefix.
func NewNATS(conn Publisher, subjectPrefix string) *NATS {
	return &NATS{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		now:           time.Now,
	}
}

type emailJob struct {
	To        string    `json:"to"`
	Template  string    `json:"template"`
	FirstName string    `json:"first_name,omitempty"`
	ResetURL  string    `json:"reset_url,omitempty"`
	QueuedAt  time.Time `json:"queued_at"`
}

// SendWelcome queues the post-signup welcome email.
func (n *NATS) SendWelcome(ctx context.Context, address, firstName string) error {
	return n.publish(ctx, "email.welcome", emailJob{
		To:        address,
		Template:  "welcome",
		FirstName: firstName,
	})
}

// SendPasswordReset queues the password reset email carrying the reset link.
func (n *NATS) SendPasswordReset(ctx context.Context, address, resetURL string) error {
	return n.publish(ctx, "email.password_reset", emailJob{
		To:       address,
		Template: "password_reset",
		ResetURL: resetURL,
	})
}

func (n *NATS) publish(ctx context.Context, subject string, job emailJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	job.QueuedAt = n.now()
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal email job: %w", err)
	}

	if err := n.conn.Publish(n.subjectPrefix+"."+subject, data); err != nil {
		return fmt.Errorf("failed to publish email job: %w", err)
	}

	return nil
}

// Connect dials the broker with sane reconnect behavior.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return conn, nil
}
