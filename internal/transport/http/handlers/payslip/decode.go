package paysliphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"payslip/internal/transport/http/api"
)

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func failDecode(w http.ResponseWriter, err error, reqID string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
}
