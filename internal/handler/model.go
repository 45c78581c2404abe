package handler

import (
	"ModelHub/config"
	"ModelHub/internal/dto"
	"ModelHub/internal/service"
	"ModelHub/utils"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and the metadata fields.
const multipartOverhead = 1 << 20

// UploadModel accepts a multipart upload: file plus descripcion, id_usuario and
// id_categoria.
func UploadModel(c *gin.Context) {
	if limit := config.AppConfig.MaxUploadBytes; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			utils.FailWithError(c, service.UploadTooLarge(config.AppConfig.MaxUploadBytes))
			return
		}
		utils.Fail(c, http.StatusBadRequest, "archivo requerido")
		return
	}
	userID, ok := optionalUint(c, "id_usuario")
	if !ok {
		return
	}
	categoryID, ok := optionalUint(c, "id_categoria")
	if !ok {
		return
	}
	var description *string
	if v, ok := formValue(c, "descripcion"); ok {
		description = &v
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "no se pudo leer el archivo")
		return
	}
	defer file.Close()

	m, err := service.UploadModel(c.Request.Context(), &dto.UploadModelRequest{
		FileName:    filepath.Base(fileHeader.Filename),
		Description: description,
		UserID:      userID,
		CategoryID:  categoryID,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadModelResponse{
		Message:     "Modelo subido correctamente",
		ID:          m.ID,
		FileName:    m.FileName,
		Description: m.Description,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Size:        m.Size,
	})
}

// ListModels lists every model.
func ListModels(c *gin.Context) {
	models, err := service.ListModels(c.Request.Context())
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// DeleteModel removes a model, its ratings and its file.
func DeleteModel(c *gin.Context) {
	modelID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := service.DeleteModel(c.Request.Context(), modelID); err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Modelo eliminado correctamente"})
}

// ServeFile streams the stored bytes of the model uploaded under :name.
func ServeFile(c *gin.Context) {
	name := c.Param("name")
	body, m, err := service.OpenModelFile(c.Request.Context(), name)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, m.Size, m.ContentType, body, map[string]string{
		"Content-Disposition": utils.ContentDisposition(m.FileName),
	})
}
