package filestore

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3FileStore keeps uploads in an S3 bucket, selected with UPLOAD_STORE=s3.
type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

func NewS3FileStore(bucket, region, urlPrefix string) (*S3FileStore, error) {
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if region == "" {
		region = "us-west-1"
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

func (s *S3FileStore) Store(key string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", errors.Wrap(err, "upload to s3")
	}
	return s.UrlFromKey(key), nil
}

func (s *S3FileStore) Remove(key string) error {
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrap(err, "delete from s3")
}

func (s *S3FileStore) Exists(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) UrlFromKey(key string) string {
	if s.urlPrefix != "" {
		return s.urlPrefix + "/" + strings.TrimLeft(key, "/")
	}
	return "https://" + s.bucket + ".s3.amazonaws.com/" + strings.TrimLeft(key, "/")
}
