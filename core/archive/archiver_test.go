package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"stock-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectArchiver_Archive(t *testing.T) {
	m := new(mocks.Client)
	a := NewObjectArchiver(m, "stock-archive", "exits")

	var uploaded []byte
	m.On("PutObject", mock.Anything, "stock-archive", "exits/SAL-042-42.json",
		mock.Anything, mock.Anything, minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			uploaded, _ = io.ReadAll(reader)
		}).
		Return(minio.UploadInfo{}, nil)

	payload := map[string]any{"reference": "SAL-042", "restored": 2}
	err := a.Archive(context.Background(), "SAL-042-42", payload)
	require.NoError(t, err)

	assert.Contains(t, string(uploaded), `"reference": "SAL-042"`)
	m.AssertExpectations(t)
}

func TestObjectArchiver_Archive_UploadError(t *testing.T) {
	m := new(mocks.Client)
	a := NewObjectArchiver(m, "stock-archive", "exits")

	m.On("PutObject", mock.Anything, "stock-archive", "exits/x.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	err := a.Archive(context.Background(), "x", map[string]string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload archive record")
}

func TestObjectArchiver_Fetch(t *testing.T) {
	m := new(mocks.Client)
	a := NewObjectArchiver(m, "stock-archive", "exits")

	body := io.NopCloser(strings.NewReader(`{"reference":"SAL-042"}`))
	m.On("GetObject", mock.Anything, "stock-archive", "exits/SAL-042-42.json", mock.Anything).
		Return(body, nil)

	data, err := a.Fetch(context.Background(), "SAL-042-42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"reference":"SAL-042"}`, string(data))
}
