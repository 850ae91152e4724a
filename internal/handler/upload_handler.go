package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iqbaldf/chatline/internal/bootstrap"
	"github.com/iqbaldf/chatline/internal/types"
)

// allowedMimeTypes lists the upload types the client may attach: images and
// common document formats.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// UploadHandler ingests a single file and returns it as an Attachment.
// Payloads land in object storage when it is configured, base64 inline
// otherwise.
func UploadHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			sendError(c, types.NewInvalidInputError("no file uploaded"))
			return
		}
		defer file.Close()

		if header.Size > types.MaxAttachmentSize {
			sendError(c, types.NewInvalidInputError("file exceeds the 10 MiB limit"))
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if !allowedMimeTypes[mimeType] {
			sendError(c, types.NewInvalidInputError("file type not supported"))
			return
		}

		payload, err := io.ReadAll(io.LimitReader(file, types.MaxAttachmentSize+1))
		if err != nil {
			sendError(c, types.NewInvalidInputError("failed to read uploaded file"))
			return
		}
		if int64(len(payload)) > types.MaxAttachmentSize {
			sendError(c, types.NewInvalidInputError("file exceeds the 10 MiB limit"))
			return
		}

		attachment := &types.Attachment{
			ID:         uuid.New().String(),
			Filename:   header.Filename,
			MimeType:   mimeType,
			Size:       int64(len(payload)),
			Data:       base64.StdEncoding.EncodeToString(payload),
			UploadedAt: time.Now(),
		}

		if svcCtx.Attachments != nil {
			if err := svcCtx.Attachments.Offload(c.Request.Context(), attachment); err != nil {
				sendError(c, err)
				return
			}
		}

		c.JSON(http.StatusOK, types.UploadResponse{Attachment: attachment})
	}
}
