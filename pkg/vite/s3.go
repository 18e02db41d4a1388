//go:build s3manifest
// +build s3manifest

// This file provides an S3-backed manifest loader for deployments that
// publish the Vite build to a bucket or CDN origin. It is excluded from
// regular builds; enable it with:
//
//	go build -tags s3manifest

package vite

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// LoadS3 fetches and parses the manifest object at bucket/key.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	m, err := vite.LoadS3(ctx, s3.NewFromConfig(cfg), "my-bucket", "build/.vite/manifest.json")
func LoadS3(ctx context.Context, client *s3.Client, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("vite: fetch manifest s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("vite: read manifest s3://%s/%s: %w", bucket, key, err)
	}
	return Parse(data)
}
