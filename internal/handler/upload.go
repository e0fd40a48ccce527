package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/storage"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/upload"
)

func (h *handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		switch {
		case isTooLarge(err):
			abortTooLarge(c, h.maxUpload)
		case h.hasEmptyFileField(c):
			c.JSON(http.StatusBadRequest, errorResponse{Error: "No file selected"})
		default:
			c.JSON(http.StatusBadRequest, errorResponse{Error: "No file provided"})
		}
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No file selected"})
		return
	}
	if !upload.Allowed(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		renderError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			abortTooLarge(c, h.maxUpload)
			return
		}
		renderError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	resp := upload.Encode(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if h.archive != nil {
		key := storage.NewKey(time.Now(), resp.Filename)
		if err := h.archive.Put(c.Request.Context(), key, resp.MimeType, data); err != nil {
			h.logger.Warn("archive upload failed", "key", key, "error", err)
		} else {
			resp.ArchiveKey = key
		}
	}

	h.logger.Info("file uploaded", "filename", resp.Filename, "mime", resp.MimeType, "size", len(data))
	c.JSON(http.StatusOK, resp)
}

// hasEmptyFileField 判断表单里是否有未选择文件的 file 字段（filename 为空时会被解析成普通值）。
func (h *handler) hasEmptyFileField(c *gin.Context) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value["file"]
	return ok
}
