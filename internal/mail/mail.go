package mail

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender delivers HTML mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	return s.dialer.DialAndSend(msg)
}

// NopSender drops every message. Used when SMTP is not configured.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, m Message) error {
	log.Debug().Str("to", m.To).Str("subject", m.Subject).Msg("mail disabled, message dropped")
	return nil
}

// Queue sends mail from a background worker so requests never wait on SMTP.
type Queue struct {
	sender Sender
	queue  chan Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueue(sender Sender, size int) *Queue {
	q := &Queue{
		sender: sender,
		queue:  make(chan Message, size),
	}

	q.wg.Add(1)
	go q.worker()
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for m := range q.queue {
		if err := q.sender.Send(context.Background(), m); err != nil {
			log.Error().Err(err).Str("to", m.To).Str("subject", m.Subject).Msg("mail delivery failed")
		}
	}
}

// Enqueue reports false when the message was dropped.
func (q *Queue) Enqueue(m Message) bool {
	if q == nil {
		return false
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}

	select {
	case q.queue <- m:
		return true
	default:
		log.Warn().Str("to", m.To).Msg("mail queue full, dropping message")
		return false
	}
}

func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
