// Package mail abstracts the outbound transactional-email capability used by
// the contact form. The provider is a black box: it returns a message id on
// success or an error, nothing else.
package mail

import "context"

// Message is a fully composed outbound email with both representations.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer dispatches a composed message and returns the provider's message id,
// which may be empty when the transport has none.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Fake is a test double recording every dispatch.
type Fake struct {
	ID    string
	Err   error
	Calls int
	Last  Message
}

func (f *Fake) Send(_ context.Context, msg Message) (string, error) {
	f.Calls++
	f.Last = msg
	if f.Err != nil {
		return "", f.Err
	}
	return f.ID, nil
}
