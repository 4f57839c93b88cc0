package delivery

import (
	"context"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/render"
)

// NewslettersPrefix is the key prefix for published documents.
const NewslettersPrefix = "newsletters/"

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// Published holds the keys written by Publish.
type Published struct {
	HTMLKey string
	TextKey string
}

// NewsletterKey returns the storage key for a document generated at t.
func NewsletterKey(t time.Time, ext string) string {
	return NewslettersPrefix + "ai_newsletter_" + t.Format("20060102_150405") + "." + ext
}

// Publish writes both documents to store. The HTML document is written last so
// that anything triggered by its arrival finds the text edition in place.
func Publish(ctx context.Context, store Store, docs render.Documents, now time.Time) (Published, error) {
	p := Published{
		HTMLKey: NewsletterKey(now, "html"),
		TextKey: NewsletterKey(now, "txt"),
	}
	if err := store.Put(ctx, p.TextKey, []byte(docs.Text), contentTypeText); err != nil {
		return Published{}, err
	}
	if err := store.Put(ctx, p.HTMLKey, []byte(docs.HTML), contentTypeHTML); err != nil {
		return Published{}, err
	}
	return p, nil
}
