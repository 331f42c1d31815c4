// Package backup exports and restores the database as ZIP archives of
// per-table BSON dumps, kept locally and optionally pushed to S3.
package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/config"
	"github.com/lensframe/studio-core/internal/modules/system/configs"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const defaultS3PathTemplate = "backups/{Y}/{m}/{filename}"

// tableNames lists the tables included in a backup.
var tableNames = []string{
	"users", "user_sessions", "categories", "project_types", "social_links",
	"projects", "ratings", "messages", "options",
}

type manifest struct {
	CreatedAt time.Time      `json:"created_at"`
	Tables    map[string]int `json:"tables"`
}

type Handler struct {
	db      *gorm.DB
	cfgSvc  *configs.Service
	baseDir string
}

func NewHandler(db *gorm.DB, cfgSvc *configs.Service, baseDir string) *Handler {
	// Relative and empty paths anchor to the executable directory so the
	// archive location does not depend on the process working directory.
	return &Handler{db: db, cfgSvc: cfgSvc, baseDir: config.ResolveRuntimePath(baseDir, "backups")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/backups", authMW)

	g.GET("", h.list)
	g.GET("/new", h.createAndDownload)
	g.GET("/:filename", h.download)
	g.POST("/rollback", h.uploadAndRestore)
	g.PATCH("/rollback/:filename", h.rollback)
	g.POST("/upload-to-s3", h.uploadToS3)
	g.DELETE("/:filename", h.deleteOne)
}

type backupItem struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
}

// GET /backups
func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listBackups()})
}

func (h *Handler) listBackups() []backupItem {
	if err := os.MkdirAll(h.baseDir, 0o755); err != nil {
		return []backupItem{}
	}
	entries, err := os.ReadDir(h.baseDir)
	if err != nil {
		return []backupItem{}
	}
	items := []backupItem{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, backupItem{
			Filename: e.Name(),
			Size:     formatSize(info.Size()),
		})
	}
	return items
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// GET /backups/new
func (h *Handler) createAndDownload(c *gin.Context) {
	artifact, err := h.createLocalArtifact(time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	c.Data(http.StatusOK, "application/zip", artifact.Buffer.Bytes())
}

// GET /backups/:filename
func (h *Handler) download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	data, err := os.ReadFile(filepath.Join(h.baseDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// POST /backups/rollback
func (h *Handler) uploadAndRestore(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if err := h.restore(data); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "restore successful"})
}

// PATCH /backups/rollback/:filename
func (h *Handler) rollback(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	data, err := os.ReadFile(filepath.Join(h.baseDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if err := h.restore(data); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "rollback successful"})
}

// DELETE /backups/:filename
func (h *Handler) deleteOne(c *gin.Context) {
	filename := strings.TrimSpace(filepath.Base(c.Param("filename")))
	if filename == "" || !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	_ = os.Remove(filepath.Join(h.baseDir, filename))
	response.NoContent(c)
}

// POST /backups/upload-to-s3
func (h *Handler) uploadToS3(c *gin.Context) {
	cfg, err := h.cfgSvc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !cfg.Backup.Enable {
		response.NoContent(c)
		return
	}

	uploader, err := newS3Uploader(cfg.S3)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	artifact, err := h.createLocalArtifact(now)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	key := renderObjectKey(cfg.Backup.Path, artifact.Filename, now)
	if err := uploader.Upload(c.Request.Context(), key, artifact.Buffer.Bytes(), "application/zip"); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"key": key})
}

func renderObjectKey(template, filename string, now time.Time) string {
	tpl := strings.TrimSpace(template)
	if tpl == "" {
		tpl = defaultS3PathTemplate
	}

	replacer := strings.NewReplacer(
		"{Y}", now.Format("2006"),
		"{m}", now.Format("01"),
		"{d}", now.Format("02"),
		"{filename}", filename,
	)
	key := replacer.Replace(tpl)
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	if key == "" {
		return filename
	}
	return key
}

type artifact struct {
	Filename string
	Path     string
	Buffer   *bytes.Buffer
}

func (h *Handler) createLocalArtifact(now time.Time) (*artifact, error) {
	buf, err := h.createZip(now)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(h.baseDir, 0o755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("backup-%s.zip", now.Format("2006-01-02T15-04-05"))
	path := filepath.Join(h.baseDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return &artifact{Filename: filename, Path: path, Buffer: buf}, nil
}

// tableDump is the BSON document written per table. BSON cannot hold a
// top-level array, so rows are nested under one key.
type tableDump struct {
	Table string                   `bson:"table"`
	Rows  []map[string]interface{} `bson:"rows"`
}

func (h *Handler) createZip(now time.Time) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	m := manifest{CreatedAt: now, Tables: map[string]int{}}
	for _, table := range tableNames {
		var rows []map[string]interface{}
		if err := h.db.Table(table).Find(&rows).Error; err != nil {
			continue
		}
		data, err := bson.Marshal(tableDump{Table: table, Rows: rows})
		if err != nil {
			continue
		}
		f, err := w.Create(table + ".bson")
		if err != nil {
			continue
		}
		if _, err := f.Write(data); err != nil {
			return nil, err
		}
		m.Tables[table] = len(rows)
	}

	mf, err := w.Create("manifest.json")
	if err != nil {
		return nil, err
	}
	if err := json.NewEncoder(mf).Encode(m); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (h *Handler) restore(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("invalid zip file")
	}

	allowed := map[string]bool{}
	for _, t := range tableNames {
		allowed[t] = true
	}

	restored := 0
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".bson") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		raw, _ := io.ReadAll(rc)
		rc.Close()

		var dump tableDump
		if err := bson.Unmarshal(raw, &dump); err != nil {
			continue
		}
		if !allowed[dump.Table] {
			continue
		}

		h.db.Exec("DELETE FROM " + dump.Table)
		for _, row := range dump.Rows {
			h.db.Table(dump.Table).Create(normalizeRow(row))
		}
		restored++
	}
	if restored == 0 {
		return fmt.Errorf("archive holds no restorable tables")
	}
	return nil
}

// normalizeRow converts BSON decode artifacts back into driver-friendly
// values before the row is re-inserted.
func normalizeRow(row map[string]interface{}) map[string]interface{} {
	for k, v := range row {
		switch t := v.(type) {
		case primitive.DateTime:
			row[k] = t.Time()
		case primitive.Binary:
			row[k] = t.Data
		}
	}
	return row
}

// CreateLocalBackup writes a backup ZIP under baseDir. Run from cron.
func CreateLocalBackup(db *gorm.DB, baseDir string) error {
	h := NewHandler(db, nil, baseDir)
	_, err := h.createLocalArtifact(time.Now())
	return err
}
