package helpers

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"golang-advisorybackend/config"
)

// Uploader stores resume and attachment files on S3-compatible object
// storage (DigitalOcean Spaces).
type Uploader struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewUploader(ctx context.Context, cfg config.SpacesConfig) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spaces session: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
	})

	return &Uploader{client: client, bucket: cfg.Bucket, endpoint: cfg.Endpoint}, nil
}

// UploadFile stores the file under the given key and returns its public
// URL.
func (u *Uploader) UploadFile(ctx context.Context, key string, file multipart.File, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
}
