package instructionrouter

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/goliatone/go-router"
)

type testContext struct {
	method        string
	path          string
	body          []byte
	query         map[string]string
	headers       map[string]string
	params        map[string]string
	locals        map[any]any
	ctx           context.Context
	recorder      *httptest.ResponseRecorder
	statusWritten bool
	status        int
	sendCalled    bool
}

func newTestContext(method, path string, body []byte, headers map[string]string, query map[string]string) *testContext {
	if headers == nil {
		headers = make(map[string]string)
	}
	if query == nil {
		query = make(map[string]string)
	}
	return &testContext{
		method:   method,
		path:     path,
		body:     body,
		query:    query,
		headers:  headers,
		params:   make(map[string]string),
		locals:   make(map[any]any),
		ctx:      context.Background(),
		recorder: httptest.NewRecorder(),
	}
}

func (c *testContext) Bind(v any) error {
	if len(c.body) == 0 {
		return nil
	}
	return json.Unmarshal(c.body, v)
}

func (c *testContext) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *testContext) SetContext(ctx context.Context) {
	c.ctx = ctx
}

func (c *testContext) Next() error { return nil }

func (c *testContext) RouteName() string { return "" }

func (c *testContext) RouteParams() map[string]string { return c.params }

func (c *testContext) Method() string { return c.method }

func (c *testContext) Path() string { return c.path }

func (c *testContext) Param(name string, defaultValue ...string) string {
	if val, ok := c.params[name]; ok {
		return val
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *testContext) ParamsInt(key string, defaultValue int) int {
	val := c.Param(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (c *testContext) Query(name string, defaultValue ...string) string {
	if val, ok := c.query[name]; ok {
		return val
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *testContext) QueryValues(name string) []string {
	if val, ok := c.query[name]; ok {
		return []string{val}
	}
	return nil
}

func (c *testContext) QueryInt(name string, defaultValue int) int {
	val := c.Query(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (c *testContext) Queries() map[string]string { return c.query }

func (c *testContext) Body() []byte { return c.body }

func (c *testContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		c.locals[key] = value[0]
		return value[0]
	}
	return c.locals[key]
}

func (c *testContext) LocalsMerge(key any, value map[string]any) map[string]any {
	merged, _ := c.locals[key].(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	for k, v := range value {
		merged[k] = v
	}
	c.locals[key] = merged
	return merged
}

func (c *testContext) Render(name string, bind any, layouts ...string) error {
	return nil
}

func (c *testContext) Cookie(cookie *router.Cookie) {}

func (c *testContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *testContext) CookieParser(out any) error { return nil }

func (c *testContext) Redirect(location string, status ...int) error {
	code := http.StatusFound
	if len(status) > 0 {
		code = status[0]
	}
	c.SetHeader("Location", location)
	c.writeHeader(code)
	return nil
}

func (c *testContext) RedirectToRoute(routeName string, params router.ViewContext, status ...int) error {
	return nil
}

func (c *testContext) RedirectBack(fallback string, status ...int) error {
	return nil
}

func (c *testContext) Header(name string) string {
	return c.headers[name]
}

func (c *testContext) Referer() string { return "" }

func (c *testContext) OriginalURL() string { return c.path }

func (c *testContext) FormFile(key string) (*multipart.FileHeader, error) {
	return nil, nil
}

func (c *testContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *testContext) IP() string { return "127.0.0.1" }

func (c *testContext) Status(code int) router.Context {
	c.writeHeader(code)
	return c
}

func (c *testContext) Send(body []byte) error {
	c.sendCalled = true
	if !c.statusWritten {
		c.writeHeader(http.StatusOK)
	}
	_, err := c.recorder.Write(body)
	return err
}

func (c *testContext) SendString(body string) error {
	return c.Send([]byte(body))
}

func (c *testContext) SendStatus(code int) error {
	c.writeHeader(code)
	return nil
}

func (c *testContext) JSON(code int, v any) error {
	c.recorder.Header().Set("Content-Type", "application/json")
	c.writeHeader(code)
	return json.NewEncoder(c.recorder).Encode(v)
}

func (c *testContext) SendStream(r io.Reader) error {
	if !c.statusWritten {
		c.writeHeader(http.StatusOK)
	}
	_, err := io.Copy(c.recorder, r)
	return err
}

func (c *testContext) NoContent(code int) error {
	c.writeHeader(code)
	return nil
}

func (c *testContext) SetHeader(key, val string) router.Context {
	c.recorder.Header().Set(key, val)
	return c
}

func (c *testContext) Set(key string, value any) {
	c.locals[key] = value
}

func (c *testContext) Get(key string, def any) any {
	if val, ok := c.locals[key]; ok {
		return val
	}
	return def
}

func (c *testContext) GetString(key string, def string) string {
	if val, ok := c.locals[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return def
}

func (c *testContext) GetInt(key string, def int) int {
	if val, ok := c.locals[key]; ok {
		if num, ok := val.(int); ok {
			return num
		}
	}
	return def
}

func (c *testContext) GetBool(key string, def bool) bool {
	if val, ok := c.locals[key]; ok {
		if flag, ok := val.(bool); ok {
			return flag
		}
	}
	return def
}

func (c *testContext) writeHeader(code int) {
	if c.statusWritten {
		c.status = code
		return
	}
	c.statusWritten = true
	c.status = code
	c.recorder.WriteHeader(code)
}

var _ router.Context = (*testContext)(nil)
