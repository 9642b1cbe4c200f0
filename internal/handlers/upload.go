package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sbochoun/folio/internal/model"
)

// MaxUploadBatch bounds how many images one multiple-upload request may
// carry.
const MaxUploadBatch = 10

type Uploader interface {
	Store(header *multipart.FileHeader) (*model.UploadedFile, error)
	List() ([]model.UploadedFile, error)
	Delete(filename string) error
}

func UploadSingle(uploader Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		header, err := c.FormFile("image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file uploaded"})
		}

		file, err := uploader.Store(header)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Error()})
			}
			return fmt.Errorf("storing upload: %w", err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "File uploaded successfully",
			"file":    file,
		})
	}
}

func UploadMultiple(uploader Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid multipart form"})
		}

		headers := form.File["images"]
		if len(headers) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No files uploaded"})
		}
		if len(headers) > MaxUploadBatch {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   fmt.Sprintf("At most %d files per upload", MaxUploadBatch),
			})
		}

		files := []model.UploadedFile{}
		for _, header := range headers {
			file, err := uploader.Store(header)
			if err != nil {
				var verr *model.ValidationError
				if errors.As(err, &verr) {
					return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Error()})
				}
				return fmt.Errorf("storing upload: %w", err)
			}
			files = append(files, *file)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": fmt.Sprintf("%d files uploaded successfully", len(files)),
			"files":   files,
		})
	}
}

func ListFiles(uploader Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		files, err := uploader.List()
		if err != nil {
			return fmt.Errorf("listing uploads: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "files": files})
	}
}

func DeleteFile(uploader Uploader) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := uploader.Delete(c.Param("filename")); err != nil {
			if errors.Is(err, model.ErrFileNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "File not found"})
			}
			return fmt.Errorf("deleting upload: %w", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "File deleted successfully"})
	}
}
