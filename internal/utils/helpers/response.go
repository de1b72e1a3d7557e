package helpers

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Data: data})
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Response{Error: errMsg})
}

// ErrorDetails - ошибка с подробностями (например, ошибки валидации по полям).
func ErrorDetails(w http.ResponseWriter, status int, errMsg string, details interface{}) {
	write(w, status, Response{Error: errMsg, Details: details})
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
