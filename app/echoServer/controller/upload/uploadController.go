package upload

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	storagerepo "equiprental/repository/storage"
	"equiprental/util/apperr"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// 5 MiB per upload, matches the bucket-side limit.
const maxUploadBytes = 5 << 20

type Controller struct {
	Storage storagerepo.Repo
	Log     *slog.Logger
}

// POST /v1/uploads — multipart form with a "file" part and a "bucket" field.
// Only the item-photo and return-proof buckets are reachable from here.
func (h *Controller) Upload(c echo.Context) error {
	bucket := c.FormValue("bucket")
	if bucket != storagerepo.BucketItems && bucket != storagerepo.BucketProofs {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown bucket"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "file part is required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "file too large"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable file"})
	}

	object := uuid.NewString() + filepath.Ext(fh.Filename)
	url, err := h.Storage.Upload(c.Request().Context(), storagerepo.UploadReq{
		Bucket:      bucket,
		Object:      object,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.Log.Error("upload", "err", err, "bucket", bucket)
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": "upload failed", "code": apperr.CodeOf(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
