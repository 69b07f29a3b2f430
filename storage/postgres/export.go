package postgres

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/storage"
)

type exportRepo struct {
	report *reportRepo
	cfg    config.Config
	log    logger.LoggerI
}

func NewExportRepo(report *reportRepo, cfg config.Config, log logger.LoggerI) storage.ExportRepoI {
	return &exportRepo{
		report: report,
		cfg:    cfg,
		log:    log,
	}
}

func (e *exportRepo) minioClient() (*minio.Client, error) {
	client, err := minio.New(e.cfg.MinioHost, &minio.Options{
		Creds:  credentials.NewStaticV4(e.cfg.MinioAccessKeyID, e.cfg.MinioSecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	return client, nil
}

func (e *exportRepo) upload(ctx context.Context, client *minio.Client, objectName, filePath, contentType string) (string, error) {
	_, err := client.FPutObject(ctx, e.cfg.MinioBucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "upload export file")
	}

	return fmt.Sprintf("https://%s/%s/%s", e.cfg.MinioHost, e.cfg.MinioBucket, objectName), nil
}

func (e *exportRepo) download(ctx context.Context, client *minio.Client, objectName, filePath string) error {
	if err := client.FGetObject(ctx, e.cfg.MinioBucket, objectName, filePath, minio.GetObjectOptions{}); err != nil {
		return errors.Wrap(err, "download template file")
	}

	return nil
}

func exportFileName(req *models.ExportRequest, extension string) string {
	if req.FileName != "" {
		return filepath.Base(req.FileName) + extension
	}

	return uuid.NewString() + extension
}
