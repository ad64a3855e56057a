package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"restlab/internal/products"
)

const maxBodyBytes = 1 << 20

type productAPI struct {
	store  *products.Store
	logger *zap.Logger
}

type envelope struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

func (a *productAPI) routes(r chi.Router) {
	r.Get("/", a.list)
	r.Post("/", a.create)
	r.Get("/{id}", a.get)
	r.Put("/{id}", a.replace)
	r.Patch("/{id}", a.update)
	r.Delete("/{id}", a.delete)
}

func (a *productAPI) list(w http.ResponseWriter, r *http.Request) {
	res, err := a.store.List(r.Context())
	if err != nil {
		a.cancelled(w, err)
		return
	}
	writeResult(w, res)
}

func (a *productAPI) get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	res, err := a.store.Get(r.Context(), id)
	if err != nil {
		a.cancelled(w, err)
		return
	}
	writeResult(w, res)
}

func (a *productAPI) create(w http.ResponseWriter, r *http.Request) {
	var draft products.Draft
	if !decodeBody(w, r, &draft) {
		return
	}
	res, err := a.store.Create(r.Context(), draft)
	if err != nil {
		a.cancelled(w, err)
		return
	}
	if res.IsOk() {
		w.Header().Set("Location", "/api/products/"+strconv.Itoa(res.Value().ID))
	}
	writeResult(w, res)
}

func (a *productAPI) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var draft products.Draft
	if !decodeBody(w, r, &draft) {
		return
	}
	res, err := a.store.Replace(r.Context(), id, draft)
	if err != nil {
		a.cancelled(w, err)
		return
	}
	writeResult(w, res)
}

func (a *productAPI) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var patch products.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	res, err := a.store.Update(r.Context(), id, patch)
	if err != nil {
		a.cancelled(w, err)
		return
	}
	writeResult(w, res)
}

func (a *productAPI) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	res, err := a.store.Delete(r.Context(), id)
	if err != nil {
		a.cancelled(w, err)
		return
	}
	if !res.IsOk() {
		writeError(w, res.Err())
		return
	}
	writeJSON(w, res.Status(), envelope{Data: nil, Status: res.Status(), Message: res.Message()})
}

// cancelled reports a request abandoned during the artificial latency.
func (a *productAPI) cancelled(w http.ResponseWriter, err error) {
	a.logger.Debug("product request cancelled", zap.Error(err))
	writeError(w, &products.APIError{Status: http.StatusServiceUnavailable, Message: "Request cancelled"})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &products.APIError{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
			Errors:  []string{"id must be an integer"},
		})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(dst)
		if err == nil && decoder.More() {
			err = errors.New("unexpected data after JSON body")
		}
	}
	if err != nil {
		writeError(w, &products.APIError{
			Status:  http.StatusBadRequest,
			Message: "Invalid JSON",
			Errors:  []string{err.Error()},
		})
		return false
	}
	return true
}

func writeResult[T any](w http.ResponseWriter, res products.Result[T]) {
	if !res.IsOk() {
		writeError(w, res.Err())
		return
	}
	writeJSON(w, res.Status(), envelope{Data: res.Value(), Status: res.Status(), Message: res.Message()})
}

func writeError(w http.ResponseWriter, apiErr *products.APIError) {
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
