package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/ctx"
	"github.com/holisticagro/agromart/pkg/logger"
)

// memory kept for multipart parts before they spill to temp files
const multipartMemory = 8 << 20

type DocumentController struct {
	service   *services.DocumentService
	maxUpload int64
}

func NewDocumentController(service *services.DocumentService, maxUpload int64) *DocumentController {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &DocumentController{service: service, maxUpload: maxUpload}
}

// Upload handles POST /upload-files (multipart: name, email, phone, file).
func (dc *DocumentController) Upload(c *ctx.Context) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, dc.maxUpload)
	if err := c.R.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Fail(apperr.Wrap(apperr.CodeValidation, err, fmt.Sprintf("file too large (max %d bytes)", dc.maxUpload)))
			return
		}
		c.Fail(apperr.Wrap(apperr.CodeValidation, err, "invalid multipart form"))
		return
	}
	defer c.R.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := c.R.FormFile("file")
	if err != nil {
		c.BadRequest("file is required")
		return
	}
	defer file.Close()

	doc, err := dc.service.Upload(c.Context(), services.UploadInput{
		Name:        c.R.FormValue("name"),
		Email:       c.R.FormValue("email"),
		Phone:       c.R.FormValue("phone"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("File uploaded successfully", doc)
}

// List handles GET /get-files.
func (dc *DocumentController) List(c *ctx.Context) {
	docs, err := dc.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]any{"status": "ok", "data": docs})
}

// Delete handles DELETE /delete-file/{id}.
func (dc *DocumentController) Delete(c *ctx.Context) {
	if err := dc.service.Delete(c.Context(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Document deleted successfully", nil)
}

// Serve handles GET /files/{name}.
func (dc *DocumentController) Serve(c *ctx.Context) {
	name := c.Param("name")
	rc, err := dc.service.Open(c.Context(), name)
	if err != nil {
		c.Fail(err)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.W.Header().Set("Content-Type", ct)
	c.W.WriteHeader(http.StatusOK)
	if _, err := io.Copy(c.W, rc); err != nil {
		logger.WithCtx(c.Context()).Warn("file stream interrupted", "blob", name, "error", err)
	}
}
