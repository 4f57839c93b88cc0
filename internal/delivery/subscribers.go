package delivery

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Subscriber is one newsletter recipient.
type Subscriber struct {
	Email string
	Name  string
}

// ParseSubscribers reads "email[,name]" rows. Rows whose email has no "@" are
// skipped; a missing name defaults to the local part of the address.
func ParseSubscribers(r io.Reader) ([]Subscriber, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var subs []Subscriber
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse subscribers: %w", err)
		}

		email := strings.TrimSpace(rec[0])
		if !strings.Contains(email, "@") {
			continue
		}
		name := ""
		if len(rec) > 1 {
			name = strings.TrimSpace(rec[1])
		}
		if name == "" {
			name = email[:strings.Index(email, "@")]
		}
		subs = append(subs, Subscriber{Email: email, Name: name})
	}
	return subs, nil
}

// LoadSubscribers reads and parses the subscriber list stored at key.
func LoadSubscribers(ctx context.Context, store Store, key string) ([]Subscriber, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	return ParseSubscribers(strings.NewReader(string(data)))
}
