package event

import (
	"path/filepath"
	"strings"

	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/global/storage"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

const maxPosterSize = 5 << 20

var posterTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// posterContentType 扩展名与声明的类型都必须是图片
func posterContentType(filename, declared string) (string, bool) {
	ct, ok := posterTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", false
	}
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return "", false
	}
	return ct, true
}

// UploadPoster 上传活动海报到对象存储，并更新 poster_url
func UploadPoster(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	if storage.Default == nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("poster upload is not enabled"))
		return
	}
	file, err := c.FormFile("poster")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if file.Size > maxPosterSize {
		response.Fail(c, response.ErrInvalidRequest.WithTips("poster must be at most 5MB"))
		return
	}
	contentType, ok := posterContentType(file.Filename, file.Header.Get("Content-Type"))
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Only image files are allowed"))
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)
	event, err := tenant.Event(db, id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	defer f.Close()

	key, err := storage.Default.Upload(ctx, "posters", file.Filename, contentType, f)
	if err != nil {
		log.Error("上传海报失败", "error", err, "event_id", id)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	url := storage.Default.PublicURL(key)
	if err := db.Model(event).Update("poster_url", url).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("海报已上传", "event_id", id, "key", key)
	response.Success(c, gin.H{"poster_url": url})
}
