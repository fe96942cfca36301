package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/paperlens/backend/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func NewS3Client(ctx context.Context) *s3.Client {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

// GenerateDownloadLink presigns a time-limited GET for a stored paper
// source document.
func GenerateDownloadLink(ctx context.Context, baseClient *s3.Client, key string) (string, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	publicEndpoint := util.GetEnv("AWS_PUBLIC_ENDPOINT")

	publicURL, err := url.Parse(publicEndpoint)
	if err != nil || publicURL.Scheme == "" || publicURL.Host == "" {
		return "", fmt.Errorf("invalid AWS_PUBLIC_ENDPOINT: %s", publicEndpoint)
	}
	prefix := strings.TrimSuffix(publicURL.Path, "/")

	// Build the base endpoint (scheme + host only, no path)
	publicBaseEndpoint := fmt.Sprintf("%s://%s", publicURL.Scheme, publicURL.Host)

	// Use the public endpoint for presigning - this ensures the signature matches
	// the Host header that the client will send when accessing the URL
	presignClientS3 := s3.NewFromConfig(
		aws.Config{
			Region:      baseClient.Options().Region,
			Credentials: baseClient.Options().Credentials,
			HTTPClient:  baseClient.Options().HTTPClient,
		},
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(publicBaseEndpoint)
			o.UsePathStyle = true
		},
	)

	presigner := s3.NewPresignClient(presignClientS3)

	out, err := presigner.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(15*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}

	// If there's a path prefix in the public endpoint, prepend it to the presigned URL path
	if prefix != "" {
		signedURL, parseErr := url.Parse(out.URL)
		if parseErr != nil {
			return "", fmt.Errorf("failed to parse presigned url: %w", parseErr)
		}
		signedURL.Path = prefix + signedURL.Path
		return signedURL.String(), nil
	}

	return out.URL, nil
}
