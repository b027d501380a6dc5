package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/maheshrc27/autogram/configs"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Placeholder returned when no object storage is configured. Local files are
// not reachable by the Graph API, so without storage the publish can only
// work against a stand-in URL.
const placeholderImageURL = "https://placekitten.com/800/800"

// Storage resolves a publicly reachable URL for a locally composed image.
type Storage interface {
	PublicImageURL(ctx context.Context, localPath string) (string, error)
}

type R2Service struct {
	config config.Config
}

func NewR2Service(cfg config.Config) *R2Service {
	return &R2Service{config: cfg}
}

func (r *R2Service) configured() bool {
	c := r.config.R2
	return c.AccountID != "" && c.AccessKey != "" && c.SecretKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

func (r *R2Service) client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// PublicImageURL uploads the image to R2 under a generated unique key and
// returns its public URL. Without R2 configuration it returns a placeholder
// URL so local development can still exercise the publish flow.
func (r *R2Service) PublicImageURL(ctx context.Context, localPath string) (string, error) {
	if !r.configured() {
		slog.Warn("object storage not configured, using placeholder image URL")
		return placeholderImageURL, nil
	}

	file, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("error reading image file: %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := id + ".jpg"

	if err := r.upload(ctx, key, file, "image/jpeg"); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(r.config.R2.PublicBaseURL, "/"), key), nil
}

func (r *R2Service) upload(ctx context.Context, key string, file []byte, filetype string) error {
	client, err := r.client()
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(filetype),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
