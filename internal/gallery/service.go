// Package gallery uploads household photos to object storage and records
// them as image rows.
package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/roomboard/internal/logging"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/dmitrijs2005/roomboard/internal/netx"
	"github.com/dmitrijs2005/roomboard/internal/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

var ErrEmptyUpload = errors.New("empty upload")

// S3Config points the service at an S3-compatible bucket (MinIO in
// development).
type S3Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	Bucket     string
	PresignTTL time.Duration
}

// Refetcher is the part of the group data store an upload refreshes.
type Refetcher interface {
	Refetch(ctx context.Context) error
}

type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         S3Config
	store       Refetcher
	http        *http.Client
	log         logging.Logger
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg S3Config, store Refetcher, log logging.Logger) *Service {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	return &Service{
		db:          db,
		repomanager: rm,
		cfg:         cfg,
		store:       store,
		http:        &http.Client{Timeout: 2 * time.Minute},
		log:         log,
	}
}

// StorageKey returns a fresh object key inside the group's prefix.
func StorageKey(groupID, fileName string) string {
	d := time.Now().UTC()
	key := fmt.Sprintf("groups/%s/%d/%02d/%v", groupID, d.Year(), d.Month(), uuid.New())
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 && i < len(fileName)-1 {
		key += strings.ToLower(fileName[i:])
	}
	return key
}

func (s *Service) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignedPutURL presigns an upload of key.
func (s *Service) PresignedPutURL(ctx context.Context, key, contentType string) (string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	req, err := presignPutObject(pc, ctx, in, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}

// ViewURL presigns a download of the stored image key.
func (s *Service) ViewURL(ctx context.Context, key string) (string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// Upload stores content in the bucket, inserts the image row and refreshes
// the store so the gallery shows the new photo. A failed refresh is logged;
// the image exists either way.
func (s *Service) Upload(ctx context.Context, groupID, userID, title, category, fileName string, content []byte) (*models.Image, error) {
	if len(content) == 0 {
		return nil, ErrEmptyUpload
	}

	contentType := http.DetectContentType(content)
	key := StorageKey(groupID, fileName)

	url, err := s.PresignedPutURL(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	if err := netx.PutPresigned(ctx, s.http, url, contentType, content); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	img := &models.Image{
		URL:       key,
		Title:     title,
		Category:  category,
		GroupID:   groupID,
		CreatedBy: userID,
	}
	if err := s.repomanager.Images(s.db).Create(ctx, img); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "image uploaded", "group_id", groupID, "image_id", img.ID, "key", key, "bytes", len(content))

	if s.store != nil {
		if err := s.store.Refetch(ctx); err != nil {
			s.log.Warn(ctx, "refetch after upload failed", "group_id", groupID, "error", err)
		}
	}
	return img, nil
}
