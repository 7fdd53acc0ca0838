package handler

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mireo/fitvault/internal/filestore"
	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/errcode"
	"github.com/mireo/fitvault/internal/pkg/response"
	"github.com/mireo/fitvault/internal/service"
)

// maxExportBytes bounds uploaded export files. Real strong-app exports
// run well under a megabyte per year of training.
const maxExportBytes = 32 * 1024 * 1024

type ImportHandler struct {
	imports *service.ImporterService
}

func NewImportHandler(imports *service.ImporterService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

func (h *ImportHandler) Deploy(c *gin.Context) {
	var req model.DeployImportJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrImportBadPayload, "invalid request")
		return
	}
	jobID, err := h.imports.Deploy(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": jobID})
}

func (h *ImportHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if file.Size > maxExportBytes {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	reader, err := ensureReadSeekCloser(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	defer reader.Close()
	key, err := h.imports.Upload(c.Request.Context(), reader, file.Size)
	if err != nil {
		response.Error(c, errcode.ErrUploadFailed, "failed to store file")
		return
	}
	response.Success(c, gin.H{"key": key})
}

func (h *ImportHandler) List(c *gin.Context) {
	jobs, err := h.imports.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, jobs)
}

func (h *ImportHandler) Get(c *gin.Context) {
	job, err := h.imports.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}

type bufferReadSeekCloser struct {
	*bytes.Reader
}

func (bufferReadSeekCloser) Close() error { return nil }

// ensureReadSeekCloser adapts a multipart file into something the
// filestore can rewind, buffering when the upload is not seekable.
func ensureReadSeekCloser(rc io.ReadCloser) (filestore.ReadSeekCloser, error) {
	if rsc, ok := rc.(filestore.ReadSeekCloser); ok {
		return rsc, nil
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxExportBytes+1))
	if err != nil {
		return nil, err
	}
	return bufferReadSeekCloser{bytes.NewReader(data)}, nil
}
