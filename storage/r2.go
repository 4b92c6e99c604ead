package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	unsignedPayload = "UNSIGNED-PAYLOAD"
	// MaxSignedURLTTL is the longest validity SigV4 accepts for a presigned URL.
	MaxSignedURLTTL = 7 * 24 * time.Hour
)

// Options configures a Gateway.
type Options struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Gateway stores objects in an S3 compatible bucket (Cloudflare R2 in production).
type Gateway struct {
	client      objectPutter
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	endpoint    string
	bucket      string
	region      string
	now         func() time.Time
}

// NewR2Gateway builds a Gateway backed by the AWS SDK S3 client with static credentials.
func NewR2Gateway(ctx context.Context, opts Options) (*Gateway, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.New("storage endpoint and bucket are required")
	}
	if opts.Region == "" {
		opts.Region = "auto"
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""))
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})
	return NewGateway(client, creds, opts), nil
}

// NewGateway wires a Gateway around an existing S3 client.
func NewGateway(client objectPutter, creds aws.CredentialsProvider, opts Options) *Gateway {
	return &Gateway{
		client:      client,
		credentials: creds,
		signer:      v4.NewSigner(),
		endpoint:    strings.TrimRight(opts.Endpoint, "/"),
		bucket:      opts.Bucket,
		region:      opts.Region,
		now:         time.Now,
	}
}

// WithClock replaces the time source used for signing.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// Put uploads body under key with public-read access.
func (g *Gateway) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// SignedGetURL returns a presigned GET URL for key that expires ttl after now.
func (g *Gateway) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	creds, err := g.credentials.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieve credentials: %w", err)
	}
	return PresignGetURL(ctx, g.signer, creds, g.endpoint, g.bucket, g.region, key, ttl, g.now())
}

// PresignGetURL signs a path-style GET URL for bucket/key. The result depends only on its arguments.
func PresignGetURL(ctx context.Context, signer *v4.Signer, creds aws.Credentials, endpoint, bucket, region, key string, ttl time.Duration, now time.Time) (string, error) {
	if key == "" {
		return "", errors.New("empty object key")
	}
	if ttl <= 0 || ttl > MaxSignedURLTTL {
		return "", fmt.Errorf("signed url ttl %s out of range", ttl)
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	u.Path = "/" + bucket + "/" + strings.TrimLeft(key, "/")
	q := url.Values{}
	q.Set("X-Amz-Expires", strconv.FormatInt(int64(ttl/time.Second), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	signed, _, err := signer.PresignHTTP(ctx, creds, req, unsignedPayload, "s3", region, now.UTC(), func(o *v4.SignerOptions) {
		o.DisableURIPathEscaping = true
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return signed, nil
}
