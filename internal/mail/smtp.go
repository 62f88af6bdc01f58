package mail

import (
	"context"
	"fmt"
	"mime/quotedprintable"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers mail through a plain SMTP relay. It carries both the
// HTML and text representations as a multipart/alternative body. SMTP has no
// message id to return, so Send yields an empty id on success.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

const smtpBoundary = "=_portfolio_alt"

// Send composes and submits the message. The context is consulted before the
// blocking SMTP exchange starts; net/smtp itself does not support cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.Host == "" || m.Username == "" || m.Password == "" {
		return "", fmt.Errorf("mail: smtp relay not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	raw := composeMIME(msg)
	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, raw); err != nil {
		return "", err
	}
	return "", nil
}

func composeMIME(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", smtpBoundary)
	b.WriteString("\r\n")

	writePart(&b, "text/plain; charset=utf-8", msg.Text)
	writePart(&b, "text/html; charset=utf-8", msg.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", smtpBoundary)
	return []byte(b.String())
}

func writePart(b *strings.Builder, contentType, body string) {
	fmt.Fprintf(b, "--%s\r\n", smtpBoundary)
	fmt.Fprintf(b, "Content-Type: %s\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	qp := quotedprintable.NewWriter(b)
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
	b.WriteString("\r\n")
}
