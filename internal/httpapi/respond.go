package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err to its status and safe message. Server errors are
// logged with the request.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errx.StatusOf(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": errx.MessageOf(err)})
}

// persisted separates a cart change that only failed to reach storage from a
// rejected one. The former still stands in memory, so it is logged and
// reported with persisted=false instead of an error status.
func persisted(r *http.Request, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errx.ErrNotPersisted) {
		hlog.FromRequest(r).Warn().Err(err).Msg("cart change kept in memory only")
		return false, nil
	}
	return false, err
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errx.Invalid("invalid request body")
	}
	return nil
}

// withConfirmation answers the confirmation gate from the confirm query
// parameter. Anything but a true boolean declines.
func withConfirmation(r *http.Request) *http.Request {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return r.WithContext(model.WithConfirmation(r.Context(), confirmed))
}

func pathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, errx.Invalid("invalid %s %q", name, r.PathValue(name))
	}
	return id, nil
}
