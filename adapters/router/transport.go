package instructionrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	"github.com/goliatone/go-router"
)

var (
	_ instructionapi.Request  = (*exchange)(nil)
	_ instructionapi.Response = (*exchange)(nil)
)

// exchange adapts a go-router context to the controller. Responses are
// encoded the same way as the net/http transport so both stay byte for
// byte identical.
type exchange struct {
	ctx     router.Context
	maxBody int64
	status  int
	written int64
}

func newExchange(ctx router.Context, maxBody int64) *exchange {
	return &exchange{ctx: ctx, maxBody: instructionapi.BodyLimit(maxBody)}
}

func (e *exchange) Context() context.Context {
	return e.ctx.Context()
}

func (e *exchange) Method() string {
	return e.ctx.Method()
}

func (e *exchange) Path() string {
	return e.ctx.Path()
}

func (e *exchange) Header(name string) string {
	return e.ctx.Header(name)
}

func (e *exchange) Query(name string) string {
	return e.ctx.Query(name)
}

// Body hands the decoder at most one byte past the limit; the router has
// already buffered the rest.
func (e *exchange) Body() io.ReadCloser {
	body := e.ctx.Body()
	if len(body) == 0 {
		return nil
	}
	if int64(len(body)) > e.maxBody+1 {
		body = body[:e.maxBody+1]
	}
	return io.NopCloser(bytes.NewReader(body))
}

func (e *exchange) SetHeader(name, value string) {
	e.ctx.SetHeader(name, value)
}

func (e *exchange) WriteHeader(status int) {
	if e.status == 0 {
		e.status = status
	}
	e.ctx.Status(status)
}

func (e *exchange) Write(data []byte) (int, error) {
	if e.status == 0 {
		e.status = http.StatusOK
	}
	if err := e.ctx.Send(data); err != nil {
		return 0, err
	}
	e.written += int64(len(data))
	return len(data), nil
}

func (e *exchange) WriteJSON(status int, payload any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	e.SetHeader("Content-Type", "application/json; charset=utf-8")
	e.WriteHeader(status)
	_, err := e.Write(buf.Bytes())
	return err
}

func (e *exchange) Status() int {
	if e.status == 0 {
		return http.StatusOK
	}
	return e.status
}
