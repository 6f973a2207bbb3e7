package instructionapi

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit returns max, or DefaultMaxBodyBytes when max is not positive.
func BodyLimit(max int64) int64 {
	if max <= 0 {
		return DefaultMaxBodyBytes
	}
	return max
}

// Request provides minimal request access for transport adapters.
type Request interface {
	Context() context.Context
	Method() string
	Path() string
	Header(name string) string
	Query(name string) string
	Body() io.ReadCloser
}

// RequestDecoder parses an HTTP request into a record.
type RequestDecoder interface {
	Decode(req Request) (instruction.Record, error)
}

// JSONRequestDecoder decodes JSON bodies keyed by the German field names.
type JSONRequestDecoder struct {
	MaxBodyBytes int64
}

// Decode decodes a JSON request body into a record.
func (d JSONRequestDecoder) Decode(req Request) (instruction.Record, error) {
	data, err := readBody(req, d.MaxBodyBytes)
	if err != nil {
		return instruction.Record{}, err
	}
	var record instruction.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return instruction.Record{}, instruction.NewError(instruction.KindInvalidInput, "invalid json body", err)
	}
	return record, nil
}

// FormRequestDecoder decodes application/x-www-form-urlencoded bodies.
type FormRequestDecoder struct {
	MaxBodyBytes int64
}

// Decode decodes form fields into a record. Unknown fields are ignored.
func (d FormRequestDecoder) Decode(req Request) (instruction.Record, error) {
	data, err := readBody(req, d.MaxBodyBytes)
	if err != nil {
		return instruction.Record{}, err
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return instruction.Record{}, instruction.NewError(instruction.KindInvalidInput, "invalid form body", err)
	}
	var record instruction.Record
	for name := range values {
		record.SetField(name, values.Get(name))
	}
	return record, nil
}

// ContentTypeDecoder picks the form decoder for urlencoded bodies and the
// JSON decoder otherwise.
type ContentTypeDecoder struct {
	JSON JSONRequestDecoder
	Form FormRequestDecoder
}

func (d ContentTypeDecoder) Decode(req Request) (instruction.Record, error) {
	if req == nil {
		return instruction.Record{}, instruction.NewError(instruction.KindInternal, "request is nil", nil)
	}
	mediaType, _, _ := mime.ParseMediaType(req.Header("Content-Type"))
	if strings.EqualFold(mediaType, "application/x-www-form-urlencoded") {
		return d.Form.Decode(req)
	}
	return d.JSON.Decode(req)
}

func readBody(req Request, max int64) ([]byte, error) {
	if req == nil {
		return nil, instruction.NewError(instruction.KindInternal, "request is nil", nil)
	}
	body := req.Body()
	if body == nil {
		return nil, instruction.NewError(instruction.KindInvalidInput, "request body is required", nil)
	}
	defer body.Close()

	max = BodyLimit(max)
	data, err := io.ReadAll(io.LimitReader(body, max+1))
	if err != nil {
		return nil, instruction.NewError(instruction.KindInvalidInput, "read request body", err)
	}
	if int64(len(data)) > max {
		return nil, instruction.NewError(instruction.KindInvalidInput, "request body too large", nil)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, instruction.NewError(instruction.KindInvalidInput, "request body is required", nil)
	}
	return data, nil
}
