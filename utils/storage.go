package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const localUploadDir = "uploads"

var (
	uploadDriver string
	s3Client     *s3.Client
	s3Bucket     string
)

// InitStorage sets up the profile-picture store. UPLOAD_DRIVER=s3 uploads to
// an S3 bucket; anything else keeps files on local disk under uploads/, which
// the router serves statically.
func InitStorage() {
	uploadDriver = os.Getenv("UPLOAD_DRIVER")
	if uploadDriver == "" {
		uploadDriver = "local"
	}

	if uploadDriver == "s3" {
		region := os.Getenv("S3_REGION")
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
		if err != nil {
			log.Fatalf("Unable to load AWS config for S3: %v", err)
		}
		s3Client = s3.NewFromConfig(cfg)
		s3Bucket = os.Getenv("S3_BUCKET")
		if s3Bucket == "" {
			log.Fatalf("UPLOAD_DRIVER=s3 requires S3_BUCKET")
		}
		return
	}

	if err := os.MkdirAll(localUploadDir, 0o755); err != nil {
		log.Fatalf("Unable to create upload directory: %v", err)
	}
}

// SaveProfilePicture stores an uploaded image and returns the reference kept
// on the user record: a local uploads/ path or an S3 URL.
func SaveProfilePicture(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext

	if uploadDriver == "s3" {
		return uploadToS3(src, name, fh.Header.Get("Content-Type"))
	}

	dst := filepath.Join(localUploadDir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return dst, nil
}

func uploadToS3(src io.Reader, name, contentType string) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "profile-pictures/" + name
	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if cfURL := os.Getenv("CLOUDFRONT_URL"); cfURL != "" {
		return fmt.Sprintf("%s/%s", cfURL, key), nil
	}
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s3Bucket, region, key), nil
}
