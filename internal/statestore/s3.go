package statestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Store persists state in an S3-compatible object store so multiple
// operators can share it. The lock is an object created with a conditional
// write; the bucket must support If-None-Match semantics.
type S3Store struct {
	s3     *s3.Client
	bucket string
	prefix string
	locked bool
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates a store against an S3-compatible endpoint.
func NewS3Store(endpoint, region, bucket, prefix, accessKey, secretKey string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{s3: client, bucket: bucket, prefix: prefix}, nil
}

func (s *S3Store) stateKey() string { return path.Join(s.prefix, "state.json") }
func (s *S3Store) lockKey() string  { return path.Join(s.prefix, "state.lock") }

// Lock acquires the exclusive run lock via a conditional write.
func (s *S3Store) Lock(ctx context.Context) error {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.lockKey()),
		Body:        bytes.NewReader([]byte("locked")),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if isPreconditionFailed(err) {
			return fmt.Errorf("state is locked by another run (delete s3://%s/%s if that run crashed)", s.bucket, s.lockKey())
		}
		return fmt.Errorf("failed to acquire state lock: %w", err)
	}
	s.locked = true
	return nil
}

// Unlock releases the run lock.
func (s *S3Store) Unlock() error {
	if !s.locked {
		return nil
	}
	s.locked = false
	_, err := s.s3.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.lockKey()),
	})
	if err != nil {
		return fmt.Errorf("failed to release state lock: %w", err)
	}
	return nil
}

// Get returns the record for a unit, or nil if absent.
func (s *S3Store) Get(unit string) (*Record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	return records[unit], nil
}

// Put inserts or replaces a unit's record.
func (s *S3Store) Put(record *Record) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	records[record.Unit] = record
	return s.save(records)
}

// Clear removes all records.
func (s *S3Store) Clear() error {
	_, err := s.s3.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.stateKey()),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *S3Store) load() (map[string]*Record, error) {
	out, err := s.s3.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.stateKey()),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return make(map[string]*Record), nil
		}
		return nil, fmt.Errorf("failed to read state object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state object body: %w", err)
	}

	records := make(map[string]*Record)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse state object: %w", err)
	}
	return records, nil
}

func (s *S3Store) save(records map[string]*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	_, err = s.s3.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.stateKey()),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to write state object: %w", err)
	}
	return nil
}

// isNoSuchKey checks if the error indicates the object does not exist.
func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

// isPreconditionFailed checks if a conditional write was rejected because
// the object already exists.
func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "PreconditionFailed"
	}
	return false
}
