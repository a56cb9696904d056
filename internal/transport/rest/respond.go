package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps a domain error onto its HTTP status. Storage failures are
// logged with the raw cause and answered with a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch domain.Kind(err) {
	case domain.KindValidation:
		resp := errorResponse{Error: err.Error(), Code: domain.KindValidation}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error(), domain.KindNotFound)
	case domain.KindConflict:
		writeError(w, http.StatusConflict, err.Error(), domain.KindConflict)
	default:
		if errors.Is(err, context.Canceled) {
			log.WarnContext(r.Context(), "request canceled", slog.String("path", r.URL.Path))
		} else {
			log.ErrorContext(r.Context(), "internal error",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, http.StatusInternalServerError, "internal server error", domain.KindStorage)
	}
}

// decodeBody reads the whole request body so it can be decoded more than once.
func decodeBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewValidationError("body", fmt.Sprintf("exceeds %d bytes", tooLarge.Limit))
		}
		return nil, domain.NewValidationError("body", "unreadable request body")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, domain.NewValidationError("body", "required")
	}
	return data, nil
}

func unmarshalBody(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "must be "+typeErr.Type.String())
		}
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(key, "must be an integer")
	}
	return n, nil
}

func parseBool(key, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, domain.NewValidationError(key, "must be true, false, 1 or 0")
}

func parseIDs(key, raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id < 1 {
			return nil, domain.NewValidationError(key, "must be a comma-separated list of positive integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
