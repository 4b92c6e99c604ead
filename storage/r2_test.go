package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, params)
	b, _ := io.ReadAll(params.Body)
	f.bodies = append(f.bodies, b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func testOptions() Options {
	return Options{
		Endpoint: "https://acc.eu.r2.cloudflarestorage.com",
		Bucket:   "covers",
		Region:   "auto",
	}
}

func staticCreds() aws.CredentialsProvider {
	return credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY", "")
}

// expiresAt reads the absolute expiry encoded in a SigV4 presigned URL.
func expiresAt(t *testing.T, raw string) time.Time {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	issued, err := time.Parse("20060102T150405Z", u.Query().Get("X-Amz-Date"))
	require.NoError(t, err)
	secs, err := strconv.Atoi(u.Query().Get("X-Amz-Expires"))
	require.NoError(t, err)
	return issued.Add(time.Duration(secs) * time.Second)
}

func TestGatewayPut(t *testing.T) {
	putter := &fakePutter{}
	g := NewGateway(putter, staticCreds(), testOptions())

	err := g.Put(context.Background(), "webtoon-covers/1-a.jpg", []byte("jpeg-bytes"), CoverContentType)
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "covers", aws.ToString(in.Bucket))
	assert.Equal(t, "webtoon-covers/1-a.jpg", aws.ToString(in.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, in.ACL)
	assert.Equal(t, []byte("jpeg-bytes"), putter.bodies[0])
}

func TestGatewayPutWrapsError(t *testing.T) {
	putter := &fakePutter{err: errors.New("boom")}
	g := NewGateway(putter, staticCreds(), testOptions())

	err := g.Put(context.Background(), "k", []byte("x"), CoverContentType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSignedGetURLExpiresAfterTTL(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewGateway(&fakePutter{}, staticCreds(), testOptions()).WithClock(func() time.Time { return issued })

	key := "webtoon-covers/1735689600123-tower-of-god.jpg"
	signed, err := g.SignedGetURL(context.Background(), key, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, key, signed)
	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "acc.eu.r2.cloudflarestorage.com", u.Host)
	assert.Equal(t, "/covers/"+key, u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, issued.Add(3600*time.Second), expiresAt(t, signed))
}

func TestPresignGetURLIsDeterministic(t *testing.T) {
	ctx := context.Background()
	creds, err := staticCreds().Retrieve(ctx)
	require.NoError(t, err)
	signer := v4.NewSigner()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	opts := testOptions()

	a, err := PresignGetURL(ctx, signer, creds, opts.Endpoint, opts.Bucket, opts.Region, "k.jpg", time.Hour, now)
	require.NoError(t, err)
	b, err := PresignGetURL(ctx, signer, creds, opts.Endpoint, opts.Bucket, opts.Region, "k.jpg", time.Hour, now)
	require.NoError(t, err)
	c, err := PresignGetURL(ctx, signer, creds, opts.Endpoint, opts.Bucket, opts.Region, "k.jpg", time.Hour, now.Add(time.Second))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPresignGetURLRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	creds, err := staticCreds().Retrieve(ctx)
	require.NoError(t, err)
	signer := v4.NewSigner()
	now := time.Now()

	_, err = PresignGetURL(ctx, signer, creds, "https://e.example", "b", "auto", "", time.Hour, now)
	assert.Error(t, err)
	_, err = PresignGetURL(ctx, signer, creds, "https://e.example", "b", "auto", "k", 0, now)
	assert.Error(t, err)
	_, err = PresignGetURL(ctx, signer, creds, "https://e.example", "b", "auto", "k", 8*24*time.Hour, now)
	assert.Error(t, err)
	_, err = PresignGetURL(ctx, signer, creds, "not a url", "b", "auto", "k", time.Hour, now)
	assert.Error(t, err)
}
