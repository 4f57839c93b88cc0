package delivery

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>Newsletter Status</title></head>
<body style="font-family: Arial, sans-serif; padding: 50px; text-align: center;">
    <h2>Newsletter Status</h2>
    <p style="font-size: 18px;">{{.}}</p>
</body>
</html>
`))

// Approver sends a stored newsletter to the subscriber list once approved.
type Approver struct {
	Newsletters    Store
	Subscribers    Store
	SubscribersKey string
	Broadcaster    *Broadcaster
	Logger         *slog.Logger
	Now            func() time.Time
}

// ErrNoMailer is returned when an approval arrives without a configured mailer.
var ErrNoMailer = errors.New("no mailer configured")

// DefaultSubscribersKey is where the subscriber list is stored.
const DefaultSubscribersKey = "subscribers.csv"

// Approve loads the document at key and broadcasts it. The returned message is
// suitable for the status page.
func (a *Approver) Approve(ctx context.Context, key string) (Report, string, error) {
	doc, err := a.Newsletters.Get(ctx, key)
	if err != nil {
		return Report{}, "Error: " + err.Error(), err
	}

	subsKey := a.SubscribersKey
	if subsKey == "" {
		subsKey = DefaultSubscribersKey
	}
	subs, err := LoadSubscribers(ctx, a.Subscribers, subsKey)
	if err != nil {
		return Report{}, "Error: " + err.Error(), err
	}
	if len(subs) == 0 {
		return Report{}, "No subscribers found", nil
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	if a.Broadcaster == nil || a.Broadcaster.Mailer == nil {
		return Report{}, "Error: no mailer configured", ErrNoMailer
	}
	b := *a.Broadcaster
	if b.Subject == "" {
		b.Subject = "AI Agents Newsletter " + now().Format("20060102_150405")
	}

	report := b.Send(ctx, string(doc), subs)
	return report, approvedMessage(report), nil
}

func approvedMessage(r Report) string {
	msg := "Newsletter sent successfully to " + strconv.Itoa(r.Sent) + " subscribers!"
	if len(r.Failed) > 0 {
		msg += " (" + strconv.Itoa(len(r.Failed)) + " failed)"
	}
	return msg
}

// NewRouter returns a gin engine serving GET /approve.
func NewRouter(a *Approver) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/approve", a.handleApprove)
	return r
}

func (a *Approver) handleApprove(c *gin.Context) {
	key := strings.TrimSpace(c.Query("newsletter"))
	if key == "" {
		writeStatus(c, http.StatusBadRequest, "Error: Missing newsletter parameter")
		return
	}

	log := a.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log.Info("approval received", "newsletter", key)

	report, msg, err := a.Approve(c.Request.Context(), key)
	if err != nil {
		log.Error("approval failed", "newsletter", key, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		writeStatus(c, status, msg)
		return
	}
	log.Info("approval handled", "newsletter", key, "report", report.String())
	writeStatus(c, http.StatusOK, msg)
}

func writeStatus(c *gin.Context, code int, msg string) {
	var sb strings.Builder
	if err := statusPage.Execute(&sb, msg); err != nil {
		c.String(http.StatusInternalServerError, "render status page: %v", err)
		return
	}
	c.Data(code, "text/html; charset=utf-8", []byte(sb.String()))
}
