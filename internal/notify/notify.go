// Package notify declares the collaborator boundaries of the pipeline:
// the outbound confirmation sender invoked after a successful run, and the
// attachment fetcher that fills the input directory before one. Both are
// thin third-party-API glue implemented outside this repository; the
// pipeline only depends on the interfaces.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Message is the confirmation payload built from a finished run: the
// report's content as body, the report file attached.
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	Attachments []string
}

// Sender delivers a confirmation message. Delivery failures must never be
// treated as pipeline failures; callers log and swallow them.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Fetcher downloads spreadsheet attachments into destDir before a run and
// reports how many files it wrote. The pipeline core never calls it and is
// agnostic to how input files arrived.
type Fetcher interface {
	Fetch(ctx context.Context, destDir string) (int, error)
}

// LogSender is the default Sender: it records the would-be delivery in the
// run log and nothing else. The Gmail-backed sender used in production
// implements the same interface out of tree.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Strs("attachments", msg.Attachments).
		Msg("confirmation prepared (no sender configured, not delivered)")
	return nil
}
