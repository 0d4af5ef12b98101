package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/tuna/internal/domain/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var (
	errInvalidID    = errors.New("id must be a positive integer")
	errTrailingData = errors.New("malformed JSON: body must hold a single JSON object")
	errNotAnObject  = errors.New("request body must be a JSON object")
)

// decodeJSON reads exactly one JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(op, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return decodeError(op, err)
		}
		return wrapKind(op, ErrBadRequest, errTrailingData)
	}
	return nil
}

func decodeError(op string, err error) error {
	var (
		typeErr  *json.UnmarshalTypeError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return wrapKind(op, ErrTooLarge, fmt.Errorf("request body must not exceed %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		return wrapKind(op, ErrBadRequest, errors.New("request body must not be empty"))
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return wrapKind(op, ErrBadRequest, errNotAnObject)
		}
		return wrapKind(op, ErrBadRequest, fmt.Errorf("field %s must be %s", typeErr.Field, typeErr.Type))
	default:
		return wrapKind(op, ErrBadRequest, fmt.Errorf("malformed JSON: %w", err))
	}
}

// parseID reads the {id} path value.
func parseID(r *http.Request, op string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, wrapKind(op, ErrBadRequest, errInvalidID)
	}
	return id, nil
}

// decodeRequest decodes the body into req and checks its validate tags.
func decodeRequest(w http.ResponseWriter, r *http.Request, op string, req any) error {
	if err := decodeJSON(w, r, op, req); err != nil {
		return err
	}
	if err := model.Validate(req); err != nil {
		return wrapKind(op, ErrBadRequest, err)
	}
	return nil
}
