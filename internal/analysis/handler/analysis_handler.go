package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/analysis/handler/dto"
	analysis "github.com/msmkdenis/yap-foodorder/internal/analysis/service"
	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

var knownKinds = map[string]struct{}{
	analysis.KindCalories: {},
	analysis.KindCost:     {},
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// AnalysisService mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_analysis_service.go -package=mock github.com/msmkdenis/yap-foodorder/internal/analysis/handler AnalysisService
type AnalysisService interface {
	Estimate(ctx context.Context, kind string, image []byte) (string, error)
}

type AnalysisHandler struct {
	analysisService AnalysisService
	logger          *zap.Logger
}

func NewAnalysisHandler(e *echo.Echo, service AnalysisService, logger *zap.Logger) *AnalysisHandler {
	handler := &AnalysisHandler{
		analysisService: service,
		logger:          logger,
	}

	e.POST("/api/analysis/:kind", handler.Estimate)

	return handler
}

// @Summary       Estimate calories or cost
// @Description   Sends the uploaded food photo to the image model with the prompt of the requested kind.
// @Tags          Analysis API
// @Accept        multipart/form-data
// @Produce       json
// @Param         kind    path       string   true   "calories or cost"
// @Param         image   formData   file     true   "Food photo (jpg, jpeg, png)"
// @Success       200     {object}   dto.EstimateResponse
// @Failure       400
// @Failure       404
// @Failure       415
// @Failure       502
// @Router        /api/analysis/{kind} [post]
func (h *AnalysisHandler) Estimate(c echo.Context) error {
	kind := c.Param("kind")
	if _, ok := knownKinds[kind]; !ok {
		h.logger.Warn("Unknown estimate kind", zap.String("kind", kind))
		return c.NoContent(http.StatusNotFound)
	}
	h.logger.Info("User clicked estimate button", zap.String("kind", kind))

	image, err := h.readImage(c)
	if errors.Is(err, apperrors.ErrUnsupportedImage) {
		h.logger.Warn("Unsupported image type", zap.Error(err))
		return c.String(http.StatusUnsupportedMediaType, "Error: only jpg, jpeg and png images are supported")
	}
	if err != nil {
		h.logger.Warn("Unable to read image", zap.Error(err))
		return c.String(http.StatusBadRequest, "Error: upload a food photo first")
	}

	text, err := h.analysisService.Estimate(c.Request().Context(), kind, image)

	if errors.Is(err, apperrors.ErrUnknownAnalysis) {
		return c.NoContent(http.StatusNotFound)
	}

	if errors.Is(err, apperrors.ErrEmptyImage) {
		return c.String(http.StatusBadRequest, "Error: upload a food photo first")
	}

	if err != nil {
		h.logger.Error("Unable to analyze image", zap.Error(err))
		return c.String(http.StatusBadGateway, "Error: unable to analyze image, try again later")
	}

	return c.JSON(http.StatusOK, dto.EstimateResponse{Kind: kind, Text: text})
}

func (h *AnalysisHandler) readImage(c echo.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, apperrors.NewValueError("no image in request", utils.Caller(), err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, apperrors.NewValueError(fileHeader.Filename, utils.Caller(), apperrors.ErrUnsupportedImage)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValueError("unable to open upload", utils.Caller(), err)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValueError("unable to read upload", utils.Caller(), err)
	}

	h.logger.Info("User uploaded image", zap.String("file", fileHeader.Filename), zap.Int("bytes", len(image)))

	return image, nil
}
