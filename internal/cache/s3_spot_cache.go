package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// S3Client defines the S3 operations the spot cache needs
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

const spotsObjectKey = "spots.json"

// SpotListCacheProvider persists the spot list between cold starts
type SpotListCacheProvider interface {
	GetSpots(ctx context.Context) ([]models.Spot, error)
	SaveSpots(ctx context.Context, spots []models.Spot) error
}

// SpotListCacheRecord is the JSON object stored in the bucket
type SpotListCacheRecord struct {
	Spots       []models.Spot `json:"spots"`
	LastUpdated int64         `json:"lastUpdated"`
	TTL         int64         `json:"ttl"`
}

// S3SpotCache stores the spot list as a single object in S3
type S3SpotCache struct {
	client     S3Client
	bucketName string
	ttl        time.Duration
	clock      clock
}

func NewS3SpotCache(client S3Client, bucketName string, ttl time.Duration) *S3SpotCache {
	if ttl <= 0 {
		ttl = DefaultSpotListTTL
	}
	return &S3SpotCache{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		clock:      systemClock{},
	}
}

// GetSpots returns the stored list. A missing or expired object is a miss
// (nil, nil), not an error.
func (c *S3SpotCache) GetSpots(ctx context.Context) ([]models.Spot, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(spotsObjectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading spot list from S3: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record SpotListCacheRecord
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding cache record: %w", err)
	}

	if c.clock.Now().Unix() > record.TTL {
		log.Debug().Msg("Spot list cache expired")
		return nil, nil
	}

	return record.Spots, nil
}

func (c *S3SpotCache) SaveSpots(ctx context.Context, spots []models.Spot) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := c.clock.Now().Unix()
	record := SpotListCacheRecord{
		Spots:       spots,
		LastUpdated: now,
		TTL:         now + int64(c.ttl.Seconds()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(spotsObjectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Int("spot_count", len(spots)).Msg("Saved spot list to S3 cache")
	return nil
}
