package delivery

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Message is a single HTML email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, msg Message) error

func (f MailerFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// SESAPI is the subset of the SES client used by SESMailer.
type SESAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends through Amazon SES.
type SESMailer struct {
	client SESAPI
}

// NewSESMailer wraps an SES client.
func NewSESMailer(client SESAPI) *SESMailer {
	return &SESMailer{client: client}
}

const charset = "UTF-8"

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if msg.From == "" || msg.To == "" {
		return errors.New("ses: sender and recipient are required")
	}
	body := &sestypes.Body{}
	if msg.HTML != "" {
		body.Html = &sestypes.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)}
	}
	if msg.Text != "" {
		body.Text = &sestypes.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)}
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(msg.From),
		Destination: &sestypes.Destination{ToAddresses: []string{msg.To}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}

// ApprovalSubject is the subject of the approval request.
const ApprovalSubject = "Newsletter Approval Required"

var approvalBanner = template.Must(template.New("approval").Parse(`<div style="background: #f0f0f0; padding: 20px; text-align: center; border: 2px solid #007cba; margin-bottom: 20px;">
    <h2 style="margin: 0; color: #007cba;">Newsletter Approval Required</h2>
    <p style="margin: 10px 0;">Review the newsletter below and click to approve:</p>
    <a href="{{.}}" style="background: #28a745; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block;">
        CLICK HERE TO APPROVE AND SEND
    </a>
</div>
`))

// ApprovalLink returns the URL that approves the newsletter stored at key.
func ApprovalLink(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/approve?newsletter=" + url.QueryEscape(key)
}

// ApprovalRequest describes who asks whom to approve which document.
type ApprovalRequest struct {
	From     string
	Admin    string
	BaseURL  string
	Key      string
	Document string
}

// RequestApproval emails the administrator the document with an approval
// banner above it.
func RequestApproval(ctx context.Context, mailer Mailer, req ApprovalRequest) error {
	var sb strings.Builder
	if err := approvalBanner.Execute(&sb, ApprovalLink(req.BaseURL, req.Key)); err != nil {
		return fmt.Errorf("render approval banner: %w", err)
	}
	sb.WriteString(req.Document)

	return mailer.Send(ctx, Message{
		From:    req.From,
		To:      req.Admin,
		Subject: ApprovalSubject,
		HTML:    sb.String(),
	})
}
