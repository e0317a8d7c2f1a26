package handler

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/spf13/afero"
)

// MediaHandler 提供上傳的圖片, prefix 為對外的 MEDIA_URL
func MediaHandler(mediaFs afero.Fs, prefix string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(afero.NewHttpFs(mediaFs)))
}

// SPAHandler 檔案存在時直接回傳, 否則回傳 index.html 交給前端路由
func SPAHandler(staticFs afero.Fs) http.Handler {
	httpFs := afero.NewHttpFs(staticFs)
	fileServer := http.FileServer(httpFs)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasPrefix(name, "/api/") {
			response.ErrorCode(w, apperr.NotFoundCode)
			return
		}
		if info, err := staticFs.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		index, err := httpFs.Open("/index.html")
		if err != nil {
			response.ErrorCode(w, apperr.NotFoundCode)
			return
		}
		defer index.Close()
		info, err := index.Stat()
		if err != nil {
			response.ErrorCode(w, apperr.NotFoundCode)
			return
		}
		http.ServeContent(w, r, "index.html", info.ModTime(), index)
	})
}

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			response.ErrorJSON(w, r, apperr.Wrap(apperr.InternalErrorCode, err))
			return
		}
	}
	response.SuccessJSON(w, dto.HealthDTO{Status: "ok"})
}
