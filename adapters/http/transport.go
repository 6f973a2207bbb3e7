package instructionhttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
)

var (
	_ instructionapi.Request  = (*exchange)(nil)
	_ instructionapi.Response = (*exchange)(nil)
)

// exchange is one request/response pair handed to the controller. It
// remembers the status and byte count so the handler can log the outcome.
type exchange struct {
	w       http.ResponseWriter
	r       *http.Request
	maxBody int64
	query   url.Values
	status  int
	written int64
}

func newExchange(w http.ResponseWriter, r *http.Request, maxBody int64) *exchange {
	return &exchange{w: w, r: r, maxBody: instructionapi.BodyLimit(maxBody)}
}

func (e *exchange) Context() context.Context {
	return e.r.Context()
}

func (e *exchange) Method() string {
	return e.r.Method
}

func (e *exchange) Path() string {
	return e.r.URL.Path
}

func (e *exchange) Header(name string) string {
	return e.r.Header.Get(name)
}

func (e *exchange) Query(name string) string {
	if e.query == nil {
		e.query = e.r.URL.Query()
	}
	return e.query.Get(name)
}

// Body stops the client one byte past the limit, leaving the decoder to
// report an oversized record.
func (e *exchange) Body() io.ReadCloser {
	if e.r.Body == nil || e.r.Body == http.NoBody {
		return nil
	}
	return http.MaxBytesReader(e.w, e.r.Body, e.maxBody+1)
}

func (e *exchange) SetHeader(name, value string) {
	e.w.Header().Set(name, value)
}

func (e *exchange) WriteHeader(status int) {
	if e.status == 0 {
		e.status = status
	}
	e.w.WriteHeader(status)
}

func (e *exchange) Write(data []byte) (int, error) {
	if e.status == 0 {
		e.status = http.StatusOK
	}
	n, err := e.w.Write(data)
	e.written += int64(n)
	return n, err
}

// WriteJSON keeps German punctuation such as "&" unescaped.
func (e *exchange) WriteJSON(status int, payload any) error {
	e.SetHeader("Content-Type", "application/json; charset=utf-8")
	e.WriteHeader(status)
	enc := json.NewEncoder(e)
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

func (e *exchange) Status() int {
	if e.status == 0 {
		return http.StatusOK
	}
	return e.status
}
