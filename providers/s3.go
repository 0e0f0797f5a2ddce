package providers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

// UploadFileToS3 streams a local file to bucket. An empty objectName uses the
// file's base name as key.
func (c *Clients) UploadFileToS3(ctx context.Context, fileName, bucket, objectName string) (*manager.UploadOutput, error) {
	if objectName == "" {
		objectName = filepath.Base(fileName)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.WrapPrefix(err, "open upload source", 0)
	}
	defer file.Close()

	log.Debug().Str("bucket", bucket).Str("key", objectName).Msg("[Clients.UploadFileToS3] uploading")

	return c.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
		Body:   file,
	})
}

func (c *Clients) ListS3Objects(ctx context.Context, bucket, prefix string) (*s3.ListObjectsV2Output, error) {
	return c.S3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
}
