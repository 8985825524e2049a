package blob

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestStore_Put(t *testing.T) {
	api := newFakeS3()
	store := New(api, Options{Bucket: "forms", Region: "eu-west-1"}, slog.Default())

	ref, err := store.Put(context.Background(), "abc.png", "image/png", []byte("PNGDATA"))
	require.NoError(t, err)

	assert.Equal(t, "https://forms.s3.eu-west-1.amazonaws.com/abc.png", ref)
	assert.Equal(t, []byte("PNGDATA"), api.objects["forms/abc.png"])
	assert.Equal(t, "image/png", api.types["forms/abc.png"])
	assert.Equal(t, "forms", store.Bucket())
}

func TestStore_Put_Error(t *testing.T) {
	boom := errors.New("access denied")
	api := newFakeS3()
	api.err = boom
	store := New(api, Options{Bucket: "forms"}, slog.Default())

	ref, err := store.Put(context.Background(), "abc.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ref)
	assert.Empty(t, api.objects)
}

func TestOpen_InvalidConnString(t *testing.T) {
	_, err := Open(context.Background(), "ftp://nope", slog.Default())
	assert.Error(t, err)
}
