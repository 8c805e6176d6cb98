package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verify mockS3Client implements S3Client interface
var _ S3Client = (*mockS3Client)(nil)

type mockS3Client struct {
	getObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getObjectFunc != nil {
		return m.getObjectFunc(ctx, params, optFns...)
	}
	return &s3.GetObjectOutput{}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putObjectFunc != nil {
		return m.putObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

func createTestS3Cache(s3Client *mockS3Client, clk clock) *S3SpotCache {
	c := NewS3SpotCache(s3Client, "test-bucket", 24*time.Hour)
	if clk != nil {
		c.clock = clk
	}
	return c
}

func recordBody(t *testing.T, record SpotListCacheRecord) io.ReadCloser {
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return io.NopCloser(bytes.NewReader(data))
}

func TestGetSpots(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		getObject func(t *testing.T) (*s3.GetObjectOutput, error)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "valid cache",
			getObject: func(t *testing.T) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: recordBody(t, SpotListCacheRecord{
					Spots:       createTestSpots(),
					LastUpdated: now.Unix(),
					TTL:         now.Add(24 * time.Hour).Unix(),
				})}, nil
			},
			wantLen: 2,
		},
		{
			name: "expired cache",
			getObject: func(t *testing.T) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: recordBody(t, SpotListCacheRecord{
					Spots:       createTestSpots(),
					LastUpdated: now.Add(-48 * time.Hour).Unix(),
					TTL:         now.Add(-24 * time.Hour).Unix(),
				})}, nil
			},
		},
		{
			name: "missing object is a miss",
			getObject: func(t *testing.T) (*s3.GetObjectOutput, error) {
				return nil, &types.NoSuchKey{}
			},
		},
		{
			name: "other s3 errors surface",
			getObject: func(t *testing.T) (*s3.GetObjectOutput, error) {
				return nil, errors.New("access denied")
			},
			wantErr: true,
		},
		{
			name: "invalid json",
			getObject: func(t *testing.T) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("invalid json"))}, nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockS3 := &mockS3Client{
				getObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					assert.Equal(t, "test-bucket", aws.ToString(params.Bucket))
					assert.Equal(t, spotsObjectKey, aws.ToString(params.Key))
					return tt.getObject(t)
				},
			}
			c := createTestS3Cache(mockS3, &fakeClock{now: now})

			got, err := c.GetSpots(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestSaveSpots(t *testing.T) {
	clk := &fakeClock{now: time.Now()}

	t.Run("successful save", func(t *testing.T) {
		mockS3 := &mockS3Client{
			putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				body, err := io.ReadAll(params.Body)
				require.NoError(t, err)

				var record SpotListCacheRecord
				require.NoError(t, json.Unmarshal(body, &record))
				assert.Equal(t, clk.Now().Unix(), record.LastUpdated)
				assert.Equal(t, clk.Now().Add(24*time.Hour).Unix(), record.TTL)
				assert.Len(t, record.Spots, 2)
				return &s3.PutObjectOutput{}, nil
			},
		}

		require.NoError(t, createTestS3Cache(mockS3, clk).SaveSpots(context.Background(), createTestSpots()))
	})

	t.Run("s3 error", func(t *testing.T) {
		mockS3 := &mockS3Client{
			putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				return nil, &types.NoSuchBucket{}
			},
		}

		assert.Error(t, createTestS3Cache(mockS3, clk).SaveSpots(context.Background(), createTestSpots()))
	})
}

func TestS3SpotCacheRoundTripAndExpiry(t *testing.T) {
	now := time.Now()
	clk := &fakeClock{now: now}

	var saved []byte
	mockS3 := &mockS3Client{
		putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			data, err := io.ReadAll(params.Body)
			if err != nil {
				return nil, err
			}
			saved = data
			return &s3.PutObjectOutput{}, nil
		},
		getObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			if saved == nil {
				return nil, &types.NoSuchKey{}
			}
			return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(saved))}, nil
		},
	}

	c := createTestS3Cache(mockS3, clk)
	ctx := context.Background()

	got, err := c.GetSpots(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SaveSpots(ctx, createTestSpots()))

	got, err = c.GetSpots(ctx)
	require.NoError(t, err)
	assert.Equal(t, createTestSpots(), got)

	clk.Advance(25 * time.Hour)
	got, err = c.GetSpots(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestS3SpotCacheBucketValidation(t *testing.T) {
	c := NewS3SpotCache(&mockS3Client{}, "", time.Hour)

	err := c.SaveSpots(context.Background(), createTestSpots())
	assert.ErrorContains(t, err, "empty bucket name")

	spots, err := c.GetSpots(context.Background())
	assert.ErrorContains(t, err, "empty bucket name")
	assert.Nil(t, spots)
}
