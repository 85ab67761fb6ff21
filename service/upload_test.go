package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/myErrors"
)

type fakeStore struct {
	keys        []string
	contentType string
	body        []byte
	err         error
	deleted     []string
	deleteCtx   context.Context
}

func (s *fakeStore) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	s.contentType = contentType
	s.body = body
	return "https://cdn.example.com/" + key, nil
}

func (s *fakeStore) DeleteObject(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	s.deleteCtx = ctx
	return nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }
func (s *fakeStore) Name() string               { return "fake" }

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestUploadSniffsTypeAndBuildsKey(t *testing.T) {
	store := &fakeStore{}
	svc := NewUploadService(store, NewCapabilities(true, true), 0, nil, zap.NewNop())

	out, err := svc.Upload(context.Background(), fileHeader(t, "photo.txt", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "image/png", out.ContentType)
	assert.True(t, strings.HasPrefix(out.ObjectKey, "uploads/"))
	assert.True(t, strings.HasSuffix(out.ObjectKey, ".png"))
	assert.Len(t, strings.Split(out.ObjectKey, "/"), 3)
	assert.Equal(t, "https://cdn.example.com/"+out.ObjectKey, out.URL)
	assert.Equal(t, int64(len(pngBytes)), out.Size)
	assert.Equal(t, pngBytes, store.body)
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	store := &fakeStore{}
	svc := NewUploadService(store, NewCapabilities(true, true), 32, nil, zap.NewNop())

	_, err := svc.Upload(context.Background(), fileHeader(t, "big.png", pngBytes))
	assert.True(t, myErrors.IsValidation(err))

	_, err = svc.Upload(context.Background(), fileHeader(t, "note.png", []byte("just text")))
	assert.True(t, myErrors.IsValidation(err))
	assert.Empty(t, store.keys)
}

func TestUploadDisabled(t *testing.T) {
	svc := NewUploadService(&fakeStore{}, NewCapabilities(false, true), 0, nil, zap.NewNop())
	_, err := svc.Upload(context.Background(), fileHeader(t, "a.png", pngBytes))
	assert.ErrorIs(t, err, myErrors.ErrUploadsDisabled)

	noStore := NewUploadService(nil, NewCapabilities(true, true), 0, nil, zap.NewNop())
	_, err = noStore.Upload(context.Background(), fileHeader(t, "a.png", pngBytes))
	assert.ErrorIs(t, err, myErrors.ErrUploadsDisabled)
}

func TestUploadStoreFailure(t *testing.T) {
	boom := errors.New("bucket unreachable")
	svc := NewUploadService(&fakeStore{err: boom}, NewCapabilities(true, true), 0, nil, zap.NewNop())
	_, err := svc.Upload(context.Background(), fileHeader(t, "a.png", pngBytes))
	assert.ErrorIs(t, err, boom)
}

// partialStore 读取部分内容后失败，模拟传输中断
type partialStore struct {
	fakeStore
	attempted []string
}

func (s *partialStore) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, _ string) (string, error) {
	s.attempted = append(s.attempted, key)
	_, _ = io.CopyN(io.Discard, reader, 8)
	return "", errors.New("connection reset by peer")
}

func TestUploadFailureDeletesObject(t *testing.T) {
	store := &partialStore{}
	svc := NewUploadService(store, NewCapabilities(true, true), 0, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := svc.Upload(ctx, fileHeader(t, "photo.png", pngBytes))
	require.Error(t, err)

	require.Len(t, store.attempted, 1)
	assert.Equal(t, store.attempted, store.deleted)
	require.NotNil(t, store.deleteCtx)
	_, hasDeadline := store.deleteCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestUploadSuccessKeepsObject(t *testing.T) {
	store := &fakeStore{}
	svc := NewUploadService(store, NewCapabilities(true, true), 0, nil, zap.NewNop())

	_, err := svc.Upload(context.Background(), fileHeader(t, "photo.png", pngBytes))
	require.NoError(t, err)
	assert.Empty(t, store.deleted)
}
