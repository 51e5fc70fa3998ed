package service

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/krau/depthmap/depth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	errUnauthorized = errors.New("unauthorized")
	errNoModel      = errors.New("model not initialized")
)

// NewRouter wires the HTTP endpoints.
func NewRouter() *gin.Engine {
	r := gin.Default()
	r.POST("/depth", DepthHandler)
	r.POST("/depth/raw", RawDepthHandler)
	r.GET("/health", HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func authenticate(c *gin.Context) error {
	auth := c.GetHeader("Authorization")

	expectedToken := authToken
	if expectedToken == "" {
		return nil
	}
	providedToken := ""
	if len(auth) > 7 && auth[:7] == "Bearer " {
		providedToken = auth[7:]
	}
	if subtle.ConstantTimeCompare([]byte(providedToken), []byte(expectedToken)) != 1 {
		return errUnauthorized
	}

	return nil
}

// readUpload authenticates and decodes the "file" form field. On failure
// the response is already written.
func readUpload(c *gin.Context, endpoint string) (image.Image, bool) {
	fail := func(code int, msg string) (image.Image, bool) {
		countRequest(endpoint, code)
		c.JSON(code, gin.H{"error": msg})
		return nil, false
	}

	if err := authenticate(c); err != nil {
		return fail(http.StatusUnauthorized, "认证失败")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(http.StatusBadRequest, "未上传文件")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(http.StatusBadRequest, "无法打开上传的文件")
	}
	defer file.Close()

	img, err := decodeImage(file)
	if err != nil {
		return fail(http.StatusBadRequest, "无法解析图片")
	}
	return img, true
}

// withModel borrows a model from the pool for the duration of fn.
func withModel(ctx context.Context, fn func(Estimator) error) error {
	pool := modelPool
	if pool == nil {
		return errNoModel
	}
	var m Estimator
	select {
	case m = <-pool:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { pool <- m }()
	return fn(m)
}

func inferenceFailed(c *gin.Context, endpoint string, err error) {
	code, msg := http.StatusInternalServerError, "推理失败"
	switch {
	case errors.Is(err, depth.ErrOutOfBounds):
		code, msg = http.StatusBadRequest, "图片尺寸过小"
	case errors.Is(err, errNoModel), errors.Is(err, depth.ErrClosed):
		code, msg = http.StatusServiceUnavailable, "模型未初始化"
	default:
		slog.Error("Prediction failed", slog.String("error", err.Error()))
	}
	countRequest(endpoint, code)
	c.JSON(code, gin.H{"error": msg})
}

func DepthHandler(c *gin.Context) {
	const endpoint = "depth"
	img, ok := readUpload(c, endpoint)
	if !ok {
		return
	}

	var out *image.NRGBA
	err := withModel(c.Request.Context(), func(m Estimator) error {
		var err error
		out, err = m.InferImage(c.Request.Context(), img)
		return err
	})
	if err != nil {
		inferenceFailed(c, endpoint, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		inferenceFailed(c, endpoint, err)
		return
	}
	countRequest(endpoint, http.StatusOK)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func RawDepthHandler(c *gin.Context) {
	const endpoint = "depth_raw"
	img, ok := readUpload(c, endpoint)
	if !ok {
		return
	}

	var res *depth.Result
	err := withModel(c.Request.Context(), func(m Estimator) error {
		var err error
		res, err = m.Estimate(c.Request.Context(), img)
		return err
	})
	if err != nil {
		inferenceFailed(c, endpoint, err)
		return
	}
	countRequest(endpoint, http.StatusOK)
	c.JSON(http.StatusOK, res)
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
