package webapp_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-session"
)

// fakeContext is a stateful router.Context for tests: cookies, locals,
// renders and redirects are recorded instead of hitting a real transport.
type fakeContext struct {
	ctx  context.Context
	path string

	cookies    map[string]string
	setCookies []*router.Cookie
	locals     map[any]any
	headers    map[string]string
	payload    any

	renderedView string
	renderedData any
	redirectPath string
	redirectCode int
	statusCode   int
	nextCalled   bool
	next         func() error
}

func newFakeContext(path string) *fakeContext {
	return &fakeContext{
		ctx:     context.Background(),
		path:    path,
		cookies: map[string]string{},
		locals:  map[any]any{},
		headers: map[string]string{},
	}
}

func (f *fakeContext) Next() error {
	f.nextCalled = true
	if f.next != nil {
		return f.next()
	}
	return nil
}

func (f *fakeContext) Context() context.Context     { return f.ctx }
func (f *fakeContext) SetContext(ctx context.Context) { f.ctx = ctx }
func (f *fakeContext) Path() string                 { return f.path }
func (f *fakeContext) Method() string               { return "GET" }
func (f *fakeContext) Body() []byte                 { return nil }

func (f *fakeContext) Status(code int) router.Context {
	f.statusCode = code
	return f
}

func (f *fakeContext) SendString(s string) error { return nil }
func (f *fakeContext) Send(b []byte) error       { return nil }
func (f *fakeContext) JSON(code int, val any) error {
	f.statusCode = code
	return nil
}
func (f *fakeContext) NoContent(code int) error {
	f.statusCode = code
	return nil
}

func (f *fakeContext) Render(name string, bind any, layout ...string) error {
	f.renderedView = name
	f.renderedData = bind
	return nil
}

func (f *fakeContext) Redirect(path string, status ...int) error {
	f.redirectPath = path
	if len(status) > 0 {
		f.redirectCode = status[0]
	}
	return nil
}

func (f *fakeContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	return f.Redirect(name, status...)
}

func (f *fakeContext) RedirectBack(fallback string, status ...int) error {
	return f.Redirect(fallback, status...)
}

func (f *fakeContext) SetHeader(key, val string) router.Context {
	f.headers[key] = val
	return f
}

func (f *fakeContext) Header(key string) string { return f.headers[key] }

func (f *fakeContext) Get(key string, defaultValue any) any      { return defaultValue }
func (f *fakeContext) GetBool(key string, def bool) bool         { return def }
func (f *fakeContext) GetInt(key string, def int) int            { return def }
func (f *fakeContext) GetString(key string, def string) string   { return def }
func (f *fakeContext) Set(key string, val any)                   {}

// Bind copies the staged payload into i through a JSON round trip.
func (f *fakeContext) Bind(i any) error {
	if f.payload == nil {
		return nil
	}
	raw, err := json.Marshal(f.payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, i)
}

func (f *fakeContext) BindJSON(i any) error      { return f.Bind(i) }
func (f *fakeContext) BindXML(i any) error       { return f.Bind(i) }
func (f *fakeContext) BindQuery(i any) error     { return f.Bind(i) }
func (f *fakeContext) CookieParser(i any) error  { return nil }

func (f *fakeContext) Cookie(cookie *router.Cookie) {
	f.setCookies = append(f.setCookies, cookie)
	if cookie.Expires.Before(time.Now()) {
		delete(f.cookies, cookie.Name)
		return
	}
	f.cookies[cookie.Name] = cookie.Value
}

func (f *fakeContext) Cookies(key string, defaultValue ...string) string {
	if v, ok := f.cookies[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) ParamsInt(key string, def int) int { return def }
func (f *fakeContext) Query(key string, def ...string) string {
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
func (f *fakeContext) QueryInt(key string, def int) int   { return def }
func (f *fakeContext) Queries() map[string]string         { return map[string]string{} }
func (f *fakeContext) QueryValues(key string) []string    { return nil }
func (f *fakeContext) RouteName() string                  { return "" }
func (f *fakeContext) RouteParams() map[string]string     { return map[string]string{} }
func (f *fakeContext) FormFile(key string) (*multipart.FileHeader, error) { return nil, nil }
func (f *fakeContext) FormValue(key string, def ...string) string {
	if len(def) > 0 {
		return def[0]
	}
	return ""
}
func (f *fakeContext) IP() string                { return "" }
func (f *fakeContext) SendStatus(code int) error { f.statusCode = code; return nil }
func (f *fakeContext) SendStream(r io.Reader) error { return nil }
func (f *fakeContext) LocalsMerge(key any, value map[string]any) map[string]any {
	merged, _ := f.locals[key].(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	for k, v := range value {
		merged[k] = v
	}
	f.locals[key] = merged
	return merged
}

func (f *fakeContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		f.locals[key] = value[0]
		return value[0]
	}
	return f.locals[key]
}

func (f *fakeContext) OriginalURL() string          { return f.path }
func (f *fakeContext) OnNext(callback func() error) { f.next = callback }
func (f *fakeContext) Referer() string              { return "" }

// lastCookie returns the most recent write for name.
func (f *fakeContext) lastCookie(name string) *router.Cookie {
	for i := len(f.setCookies) - 1; i >= 0; i-- {
		if f.setCookies[i].Name == name {
			return f.setCookies[i]
		}
	}
	return nil
}

var _ router.Context = (*fakeContext)(nil)

// testConfig satisfies session.Config.
type testConfig struct {
	baseURL string
}

func (c testConfig) GetBaseURL() string         { return c.baseURL }
func (c testConfig) GetTokenCookieName() string { return "auth.token" }
func (c testConfig) GetTokenMaxAge() int        { return 2592000 }
func (c testConfig) GetLoginPath() string       { return "/auth/login" }
func (c testConfig) GetLandingPath() string     { return "/dashboard" }
func (c testConfig) GetPublicPrefix() string    { return "/auth" }

var _ session.Config = (*testConfig)(nil)

func signedToken(name, email string, exp time.Time) string {
	claims := &session.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name:  name,
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	if err != nil {
		panic(err)
	}
	return signed
}
