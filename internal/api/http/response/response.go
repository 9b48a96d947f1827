// Package response writes JSON bodies in the shape clients expect,
// errors included as {"detail": "..."}.
package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const detailInternal = "internal server error"

type errorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status code. A value that cannot be encoded
// turns into a 500 with an internal error detail.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorBody{Detail: detailInternal})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Error writes a {"detail": detail} body.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorBody{Detail: detail})
}
