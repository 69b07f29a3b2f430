package postgres

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"ucode/ucode_go_report_builder_service/models"
)

const csvContentType = "text/csv"

// ExportCSV runs the report and uploads the rows as a CSV file.
func (e *exportRepo) ExportCSV(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "export.ExportCSV")
	defer dbSpan.Finish()

	resp, err := e.report.Run(ctx, &models.RunReportRequest{
		ProjectId: req.ProjectId,
		Query:     req.Query,
	})
	if err != nil {
		return nil, err
	}

	fileName := exportFileName(req, ".csv")
	filePath := "./" + fileName

	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "create csv file")
	}
	defer func() {
		_ = os.Remove(filePath)
	}()

	writer := csv.NewWriter(file)

	if err := writer.Write(resp.Columns); err != nil {
		file.Close()
		return nil, errors.Wrap(err, "write csv header")
	}

	for _, row := range resp.Rows {
		record := make([]string, 0, len(resp.Columns))
		for _, column := range resp.Columns {
			record = append(record, cast.ToString(row[column]))
		}
		if err := writer.Write(record); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "write csv row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, errors.Wrap(err, "flush csv")
	}
	if err := file.Close(); err != nil {
		return nil, errors.Wrap(err, "close csv file")
	}

	client, err := e.minioClient()
	if err != nil {
		return nil, err
	}

	link, err := e.upload(ctx, client, fileName, filePath, csvContentType)
	if err != nil {
		return nil, err
	}

	return &models.ExportResponse{
		FileName: fileName,
		Link:     link,
		RowCount: resp.Count,
	}, nil
}
