// Package handlers содержит общие помощники HTTP слоя: декодирование
// запросов и формирование ответов в едином формате ошибок.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машинные коды бизнес-конфликтов для клиентов API.
// Текст ошибки локализован, код - стабильный контракт.
const (
	CodeSlotUnavailable   = "SLOT_UNAVAILABLE"
	CodeSlotAlreadyLocked = "SLOT_ALREADY_LOCKED"
	CodeHoldExpired       = "HOLD_EXPIRED"
)

// ErrorResponse стандартное тело ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DecodeJSON декодирует тело запроса в dst, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON сериализует payload в тело ответа
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку без машинного кода
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorCode отправляет ошибку с машинным кодом
func RespondErrorCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict отправляет 409 с машинным кодом конфликта
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondErrorCode(w, http.StatusConflict, code, message)
}

// RespondUnprocessable отправляет 422 с машинным кодом
func RespondUnprocessable(w http.ResponseWriter, code, message string) {
	RespondErrorCode(w, http.StatusUnprocessableEntity, code, message)
}

// RespondInternalError отправляет 500 с нейтральным сообщением
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
