package delivery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/render"
)

type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
	putErr       error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestLocalStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "newsletters/a.html", []byte("<p>hi</p>"), contentTypeHTML))
	got, err := store.Get(ctx, "newsletters/a.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))

	_, err = store.Get(ctx, "newsletters/missing.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	err := store.Put(context.Background(), "../outside.txt", []byte("x"), "")
	assert.Error(t, err)
	_, err = store.Get(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewS3Store(fake, "news-bucket")

	require.NoError(t, store.Put(ctx, "k.html", []byte("body"), contentTypeHTML))
	assert.Equal(t, contentTypeHTML, fake.contentTypes["news-bucket/k.html"])

	got, err := store.Get(ctx, "k.html")
	require.NoError(t, err)
	assert.Equal(t, "body", string(got))

	_, err = store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	fake.putErr = errors.New("access denied")
	err = store.Put(ctx, "k2", []byte("x"), "")
	assert.ErrorContains(t, err, "access denied")
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	now := time.Date(2025, 6, 3, 14, 5, 9, 0, time.UTC)

	p, err := Publish(ctx, store, render.Documents{HTML: "<html/>", Text: "plain"}, now)
	require.NoError(t, err)
	assert.Equal(t, "newsletters/ai_newsletter_20250603_140509.html", p.HTMLKey)
	assert.Equal(t, "newsletters/ai_newsletter_20250603_140509.txt", p.TextKey)

	html, err := store.Get(ctx, p.HTMLKey)
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(html))
	text, err := store.Get(ctx, p.TextKey)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(text))
}
