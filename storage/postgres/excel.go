package postgres

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"ucode/ucode_go_report_builder_service/models"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportExcel runs the report, writes the rows into an .xlsx workbook and
// uploads it to object storage. When a template id is given, the template's
// header row decides column order.
func (e *exportRepo) ExportExcel(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "export.ExportExcel")
	defer dbSpan.Finish()

	if req.TemplateId != "" {
		if _, err := uuid.Parse(req.TemplateId); err != nil {
			return nil, errors.Wrap(err, "invalid template id")
		}
	}

	resp, err := e.report.Run(ctx, &models.RunReportRequest{
		ProjectId: req.ProjectId,
		Query:     req.Query,
	})
	if err != nil {
		return nil, err
	}

	client, err := e.minioClient()
	if err != nil {
		return nil, err
	}

	columns := resp.Columns
	if req.TemplateId != "" {
		// the caller-supplied id names the object, never the local path
		templatePath := "./" + uuid.NewString() + ".xlsx"
		if err := e.download(ctx, client, req.TemplateId+".xlsx", templatePath); err != nil {
			return nil, err
		}

		header, err := readTemplateHeader(templatePath)
		if err != nil {
			return nil, err
		}
		_ = os.Remove(templatePath)

		columns = orderByTemplate(resp.Columns, header)
	}

	sheet := req.SheetName
	if sheet == "" {
		sheet = "Report"
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "header cell name")
		}
		if err := file.SetCellValue(sheet, cell, column); err != nil {
			return nil, errors.Wrap(err, "write header cell")
		}
	}

	for rowIdx, row := range resp.Rows {
		for colIdx, column := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, errors.Wrap(err, "data cell name")
			}
			if err := file.SetCellValue(sheet, cell, row[column]); err != nil {
				return nil, errors.Wrap(err, "write data cell")
			}
		}
	}

	fileName := exportFileName(req, ".xlsx")
	filePath := "./" + fileName

	if err := file.SaveAs(filePath); err != nil {
		return nil, errors.Wrap(err, "save workbook")
	}
	defer func() {
		_ = os.Remove(filePath)
	}()

	link, err := e.upload(ctx, client, fileName, filePath, excelContentType)
	if err != nil {
		return nil, err
	}

	return &models.ExportResponse{
		FileName: fileName,
		Link:     link,
		RowCount: resp.Count,
	}, nil
}

// readTemplateHeader returns the first row of the workbook's first sheet.
func readTemplateHeader(filePath string) ([]string, error) {
	workbook, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "open template workbook")
	}

	if len(workbook.Sheets) == 0 || len(workbook.Sheets[0].Rows) == 0 {
		return nil, errors.New("template workbook has no header row")
	}

	var header []string
	for _, cell := range workbook.Sheets[0].Rows[0].Cells {
		if value := cell.String(); value != "" {
			header = append(header, value)
		}
	}

	return header, nil
}

// orderByTemplate keeps only the columns the template names, in template
// order.
func orderByTemplate(columns, header []string) []string {
	available := make(map[string]bool, len(columns))
	for _, column := range columns {
		available[column] = true
	}

	ordered := make([]string, 0, len(header))
	for _, column := range header {
		if available[column] {
			ordered = append(ordered, column)
		}
	}

	if len(ordered) == 0 {
		return columns
	}

	return ordered
}
