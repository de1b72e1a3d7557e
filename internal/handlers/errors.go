package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/logger"
	"cmsarticle/internal/models"
	"cmsarticle/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.WithCtx(r.Context())

	var ve *models.ValidationError
	var fde *models.ForbidDeletionError
	switch {
	case errors.As(err, &ve):
		helpers.ErrorDetails(w, http.StatusBadRequest, "Ошибка валидации", ve.Fields)
	case errors.As(err, &fde):
		helpers.Error(w, http.StatusConflict, fde.Message)
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrUnknownModel):
		helpers.Error(w, http.StatusNotFound, "Не найдено")
	case errors.Is(err, models.ErrForbidden):
		if auth.FromContext(r.Context()).IsAnonymous() {
			helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
			return
		}
		helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
	default:
		log.Error("Внутренняя ошибка", zap.Error(err), zap.String("path", r.URL.Path))
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON", zap.Error(err), zap.String("path", r.URL.Path))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 0 {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return 0, false
	}
	return id, true
}

func clampAtoi(s string, def, min, max int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < min {
			return min
		}
		if n > max {
			return max
		}
		return n
	}
	return def
}

func queryInt64(r *http.Request, name string) *int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}
