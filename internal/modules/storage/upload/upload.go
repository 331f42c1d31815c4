// Package upload signs direct browser uploads to the media host so the
// API secret never reaches the client.
package upload

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/modules/system/configs"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

var ErrUnconfigured = errors.New("upload signing is not configured")

type SignDTO struct {
	Folder   string `json:"folder"`
	PublicID string `json:"public_id"`
}

type SignResult struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// Sign produces the upload signature: SHA-1 over the sorted k=v parameter
// string with the API secret appended.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

type Handler struct {
	configs *configs.Service
}

func NewHandler(cfg *configs.Service) *Handler {
	return &Handler{configs: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/upload/sign", authMW, h.Sign)
}

// POST /upload/sign
func (h *Handler) Sign(c *gin.Context) {
	// The body is optional; everything defaults.
	var dto SignDTO
	_ = c.ShouldBindJSON(&dto)

	cfg, err := h.configs.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	up := cfg.Upload
	if up.CloudName == "" || up.APIKey == "" || up.APISecret == "" {
		response.UnprocessableEntity(c, ErrUnconfigured.Error())
		return
	}

	folder := strings.TrimSpace(dto.Folder)
	if folder == "" {
		folder = up.Folder
	}

	ts := time.Now().Unix()
	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", ts),
		"folder":    folder,
		"public_id": strings.TrimSpace(dto.PublicID),
	}

	response.OK(c, SignResult{
		Timestamp: ts,
		Signature: Sign(params, up.APISecret),
		APIKey:    up.APIKey,
		CloudName: up.CloudName,
		Folder:    folder,
	})
}
