// Package statement serves the PDF upload and report export endpoints.
package statement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"statement_insight/pkg/api/respond"
	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/config"
	"statement_insight/pkg/core/export"
	"statement_insight/pkg/core/logger"
	"statement_insight/pkg/core/normalize"
	"statement_insight/pkg/core/validate"
	"statement_insight/pkg/models"
)

const (
	msgNoFile       = "No file provided in request"
	msgNoFilename   = "No file selected"
	msgNotPDF       = "File must be a PDF"
	msgBadType      = "Invalid file type. Please upload a PDF file."
	msgTooLarge     = "File size exceeds maximum limit of 10MB"
	msgUnavailable  = "AI service is not available. Please check your API key configuration."
	msgInvalidInput = "Invalid request data"
)

// Processor is implemented by pipeline.Service.
type Processor interface {
	ProcessPDF(ctx context.Context, data []byte) (*models.FinancialReport, error)
}

type Handler struct {
	processor Processor
}

func NewHandler(p Processor) *Handler {
	return &Handler{processor: p}
}

// HandleProcessPDF accepts a multipart upload in field "file" and returns
// {"data": FinancialReport}.
func (h *Handler) HandleProcessPDF(w http.ResponseWriter, r *http.Request) {
	log := logger.Log.WithFields(logrus.Fields{
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	})
	log.Info("Starting PDF upload")

	// The ceiling applies to the whole request, multipart framing included.
	if r.ContentLength > config.MaxUploadBytes {
		h.reject(w, log, msgTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.reject(w, log, msgTooLarge)
			return
		}
		h.reject(w, log, msgNoFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" without a filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			h.reject(w, log, msgNoFilename)
			return
		}
		h.reject(w, log, msgNoFile)
		return
	}
	defer file.Close()

	log = log.WithField("filename", header.Filename)
	if strings.TrimSpace(header.Filename) == "" {
		h.reject(w, log, msgNoFilename)
		return
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		h.reject(w, log, msgNotPDF)
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
		h.reject(w, log.WithField("file_content_type", ct), msgBadType)
		return
	}
	if header.Size > config.MaxUploadBytes {
		h.reject(w, log.WithField("size", header.Size), msgTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Sprintf("Error reading PDF file: %v. Please ensure the file is not corrupted and is a valid PDF.", err))
		return
	}
	log.Info("File validation passed")

	report, err := h.processor.ProcessPDF(r.Context(), data)
	if err != nil {
		status := apperr.StatusCode(err)
		log.WithError(err).WithField("status", status).Error("PDF processing failed")
		respond.Error(w, status, uploadMessage(err))
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{"data": report})
}

func (h *Handler) reject(w http.ResponseWriter, log *logrus.Entry, msg string) {
	log.Warn(msg)
	respond.Error(w, http.StatusBadRequest, msg)
}

// uploadMessage renders the client-facing message for a pipeline failure.
func uploadMessage(err error) string {
	var (
		inputErr   *apperr.InputValidationError
		extractErr *apperr.ExtractionError
		unavailErr *apperr.ModelUnavailableError
		callErr    *apperr.ModelCallError
		malformed  *apperr.MalformedResponseError
		schemaErr  *apperr.SchemaError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Msg
	case errors.As(err, &extractErr):
		return fmt.Sprintf("Error reading PDF file: %s. Please ensure the file is not corrupted and is a valid PDF.", extractErr.Error())
	case errors.As(err, &unavailErr):
		return msgUnavailable
	case errors.As(err, &malformed), errors.As(err, &schemaErr):
		return err.Error()
	case errors.As(err, &callErr):
		return fmt.Sprintf("Error processing financial data: %v", callErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

// HandleExportXLSX converts a previously returned report into a workbook.
func (h *Handler) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, config.MaxUploadBytes))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidInput)
		return
	}
	doc, err := validate.ExportRequest(body)
	if err != nil {
		logger.Log.WithError(err).Warn("export request rejected")
		respond.Error(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	report, err := normalize.FromValue(doc.(map[string]interface{})["financial_data"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := export.WorkbookXLSX(report)
	if err != nil {
		logger.Log.WithError(err).Error("xlsx export failed")
		respond.Error(w, http.StatusInternalServerError, "Failed to export report")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
