package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"payslip/internal/platform/config"
)

const pdfContentType = "application/pdf"

var ErrDisabled = errors.New("email delivery is disabled")

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

func smtpSend(e *email.Email, addr string, auth smtp.Auth) error {
	return e.Send(addr, auth)
}

// Sender mails finished payslips as attachments.
type Sender struct {
	cfg  config.Config
	log  logrus.FieldLogger
	send sendFunc
}

func New(cfg config.Config, log logrus.FieldLogger) *Sender {
	return &Sender{cfg: cfg, log: log, send: smtpSend}
}

func (s *Sender) Enabled() bool {
	return s.cfg.EmailEnabled && s.cfg.SMTPHost != ""
}

func (s *Sender) SendDocument(ctx context.Context, to, filename string, data []byte) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("no recipient for %s", filename)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.EmailFrom
	e.To = []string{to}
	e.Subject = subjectFor(filename)
	e.Text = []byte("Please find your payslip attached.\n\nThis is a computer generated message.")
	if _, err := e.Attach(bytes.NewReader(data), filename, pdfContentType); err != nil {
		return fmt.Errorf("attach %s: %w", filename, err)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.log.WithError(err).WithField("to", to).Error("payslip email failed")
		return fmt.Errorf("send payslip email: %w", err)
	}
	s.log.WithFields(logrus.Fields{"to": to, "file": filename}).Info("payslip emailed")
	return nil
}

func subjectFor(filename string) string {
	name := strings.TrimSuffix(filename, ".pdf")
	name = strings.TrimPrefix(name, "salary-slip-")
	return "Salary slip " + name
}

// Saver delivers every saved document to one recipient.
type Saver struct {
	Sender *Sender
	To     string
}

func (s Saver) Save(ctx context.Context, filename string, data []byte) error {
	return s.Sender.SendDocument(ctx, s.To, filename, data)
}
