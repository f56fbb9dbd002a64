package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/file"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func keyIs(key string) any {
	return mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Bucket) == "uploads" && aws.ToString(in.Key) == key
	})
}

func newS3Source(t *testing.T, client *MockS3Client) *file.S3Source {
	t.Helper()

	src, err := file.NewS3Source(context.Background(), file.S3Config{
		Bucket: "uploads",
		Region: "us-east-1",
		Prefix: "/incoming/",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return src
}

func TestNewS3Source(t *testing.T) {
	t.Parallel()

	_, err := file.NewS3Source(context.Background(), file.S3Config{Bucket: "uploads"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	_, err = file.NewS3Source(context.Background(), file.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}

func TestS3Source_Lookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("resolves objects under the prefix", func(t *testing.T) {
		client := &MockS3Client{}
		data := pngBytes(t, 4, 4)

		client.On("HeadObject", mock.Anything, keyIs("incoming/avatar"), mock.Anything).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String("image/png"),
		}, nil)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(bytes.NewReader(data)),
		}, nil)

		info, err := newS3Source(t, client).Lookup(ctx, "avatar")
		require.NoError(t, err)
		assert.Equal(t, "avatar", info.Name)
		assert.Equal(t, "incoming/avatar", info.Path)
		assert.Equal(t, int64(len(data)), info.Size)
		assert.Equal(t, "image/png", info.MIMEType)

		mime, err := info.DetectMIME(ctx)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)

		client.AssertExpectations(t)
	})

	t.Run("uses attached keys", func(t *testing.T) {
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("tenants/1/doc.pdf"), mock.Anything).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(10),
		}, nil)

		info, err := newS3Source(t, client).Attach("doc", "/tenants/1/doc.pdf").Lookup(ctx, "doc")
		require.NoError(t, err)
		assert.Equal(t, "doc.pdf", info.Name)
		client.AssertExpectations(t)
	})

	t.Run("scopes keys to a view", func(t *testing.T) {
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("requests/7/avatar.png"), mock.Anything).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(4),
		}, nil).Once()
		client.On("HeadObject", mock.Anything, keyIs("incoming/avatar"), mock.Anything).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(8),
		}, nil).Once()

		base := newS3Source(t, client)
		view := base.WithKeys(map[string]string{"avatar": "/requests/7/avatar.png"})

		info, err := view.Lookup(ctx, "avatar")
		require.NoError(t, err)
		assert.Equal(t, int64(4), info.Size)

		info, err = base.Lookup(ctx, "avatar")
		require.NoError(t, err)
		assert.Equal(t, int64(8), info.Size)
		client.AssertExpectations(t)
	})

	t.Run("rejects traversal in keys", func(t *testing.T) {
		_, err := newS3Source(t, &MockS3Client{}).Attach("doc", "../secret").Lookup(ctx, "doc")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing object", &types.NotFound{}, file.ErrFileNotFound},
		{"missing key", &types.NoSuchKey{}, file.ErrFileNotFound},
		{"missing bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, file.ErrAccessDenied},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"cancelled", context.Canceled, file.ErrOperationCanceled},
	}
	for _, tt := range tests {
		t.Run("classifies "+tt.name, func(t *testing.T) {
			client := &MockS3Client{}
			client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := newS3Source(t, client).Lookup(ctx, "avatar")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("wraps unknown errors", func(t *testing.T) {
		client := &MockS3Client{}
		boom := errors.New("boom")
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

		_, err := newS3Source(t, client).Lookup(ctx, "avatar")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, file.ErrFileNotFound)
	})
}
