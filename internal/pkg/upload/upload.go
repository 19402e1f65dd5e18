package upload

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Dir is where donation photos are stored; gin serves it at /uploads.
const Dir = "uploads"

// SavePhoto stores an uploaded file under Dir with a collision-free name
// and returns the public path to reference in the donation record.
func SavePhoto(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	if err := c.SaveUploadedFile(fh, filepath.Join(Dir, name)); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
