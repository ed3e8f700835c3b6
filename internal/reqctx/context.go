// Package reqctx carries per-request ambient state: the authenticated
// account (if any) and the effective locale and time zone. A context value is
// established once at the start of request processing, is immutable
// afterwards, and is readable from arbitrarily deep call chains without
// explicit parameter threading. Long-lived event-stream connections keep the
// value captured at handshake time so asynchronous pushes can still format
// localized payloads after the originating request has ended.
package reqctx

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

type contextKey int

const requestContextKey contextKey = iota

// DefaultLocale applies when neither the account nor the request specifies one.
var DefaultLocale = language.English

// RequestContext is the ambient state of one request or stream connection.
type RequestContext struct {
	account  *domain.Account
	locale   language.Tag
	timeZone *time.Location
}

// New builds a request context. A nil account marks an unauthenticated
// request. The locale and time zone fall back to DefaultLocale and UTC.
func New(account *domain.Account, locale language.Tag, timeZone *time.Location) *RequestContext {
	if locale == language.Und {
		locale = DefaultLocale
	}
	if timeZone == nil {
		timeZone = time.UTC
	}
	return &RequestContext{account: account, locale: locale, timeZone: timeZone}
}

// ForAccount builds a request context from an authenticated account,
// resolving the account's stored locale and time zone preferences.
func ForAccount(account *domain.Account) *RequestContext {
	return New(account, ParseLocale(account.Locale), ParseTimeZone(account.TimeZone))
}

// Account returns the authenticated account, or nil.
func (rc *RequestContext) Account() *domain.Account { return rc.account }

// Authenticated reports whether an account is attached.
func (rc *RequestContext) Authenticated() bool { return rc.account != nil }

// Locale returns the effective locale for formatting.
func (rc *RequestContext) Locale() language.Tag { return rc.locale }

// TimeZone returns the effective time zone for formatting.
func (rc *RequestContext) TimeZone() *time.Location { return rc.timeZone }

// With attaches the request context to ctx. The value is scoped to the
// derived context: concurrent requests each carry their own and nothing
// leaks between them.
func With(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext retrieves the request context, reporting whether one was
// established.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	return rc, ok
}

// MustFromContext retrieves the request context and panics when none was
// established. A missing context is a programming error: every request path
// must pass through the authorization middleware (or an explicit anonymous
// context) before downstream code consults ambient state.
func MustFromContext(ctx context.Context) *RequestContext {
	rc, ok := FromContext(ctx)
	if !ok {
		panic("reqctx: no request context established; authorization middleware must run first")
	}
	return rc
}

// ParseLocale parses a BCP 47 tag, falling back to DefaultLocale.
func ParseLocale(tag string) language.Tag {
	if tag == "" {
		return DefaultLocale
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale
	}
	return parsed
}

// ParseAcceptLanguage resolves the preferred locale from an Accept-Language
// header, falling back to DefaultLocale.
func ParseAcceptLanguage(header string) language.Tag {
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return tags[0]
}

// ParseTimeZone resolves an IANA time zone name, falling back to UTC.
func ParseTimeZone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
