package client

import (
	"crypto/tls"
	"time"

	"github.com/bubblesnake/esp-socketio-client/pkg/types"
)

// OptionsInterface follows the teacher corpus's Getter/Setter/Assign
// convention: every field has a GetRaw<Field> (nil-safe pointer read),
// a <Field> (value read with zero-value fallback), a Set<Field>, and
// Assign merges a second OptionsInterface's non-nil fields in.
type OptionsInterface interface {
	GetRawURL() *string
	URL() string
	SetURL(string)

	GetRawTLSClientConfig() *tls.Config
	TLSClientConfig() *tls.Config
	SetTLSClientConfig(*tls.Config)

	GetRawExtraHeaders() types.IncomingHttpHeaders
	ExtraHeaders() types.IncomingHttpHeaders
	SetExtraHeaders(types.IncomingHttpHeaders)

	GetRawDialTimeout() *time.Duration
	DialTimeout() time.Duration
	SetDialTimeout(time.Duration)

	GetRawSendTimeout() *time.Duration
	SendTimeout() time.Duration
	SetSendTimeout(time.Duration)

	Assign(OptionsInterface) OptionsInterface
}

// Options is the concrete OptionsInterface implementation.
type Options struct {
	url             *string
	tlsClientConfig *tls.Config
	extraHeaders    types.IncomingHttpHeaders
	dialTimeout     *time.Duration
	sendTimeout     *time.Duration
}

// DefaultOptions returns Options with the corpus's default timeouts:
// a 10s dial timeout and a 5s send timeout.
func DefaultOptions() *Options {
	dial := 10 * time.Second
	send := 5 * time.Second
	return &Options{dialTimeout: &dial, sendTimeout: &send}
}

func (o *Options) GetRawURL() *string { return o.url }
func (o *Options) URL() string {
	if o.url == nil {
		return ""
	}
	return *o.url
}
func (o *Options) SetURL(v string) { o.url = &v }

func (o *Options) GetRawTLSClientConfig() *tls.Config { return o.tlsClientConfig }
func (o *Options) TLSClientConfig() *tls.Config       { return o.tlsClientConfig }
func (o *Options) SetTLSClientConfig(v *tls.Config)   { o.tlsClientConfig = v }

func (o *Options) GetRawExtraHeaders() types.IncomingHttpHeaders { return o.extraHeaders }
func (o *Options) ExtraHeaders() types.IncomingHttpHeaders       { return o.extraHeaders }
func (o *Options) SetExtraHeaders(v types.IncomingHttpHeaders)   { o.extraHeaders = v }

func (o *Options) GetRawDialTimeout() *time.Duration { return o.dialTimeout }
func (o *Options) DialTimeout() time.Duration {
	if o.dialTimeout == nil {
		return 0
	}
	return *o.dialTimeout
}
func (o *Options) SetDialTimeout(v time.Duration) { o.dialTimeout = &v }

func (o *Options) GetRawSendTimeout() *time.Duration { return o.sendTimeout }
func (o *Options) SendTimeout() time.Duration {
	if o.sendTimeout == nil {
		return 0
	}
	return *o.sendTimeout
}
func (o *Options) SetSendTimeout(v time.Duration) { o.sendTimeout = &v }

// Assign merges data's non-nil fields into o, returning o.
func (o *Options) Assign(data OptionsInterface) OptionsInterface {
	if data == nil {
		return o
	}
	if v := data.GetRawURL(); v != nil {
		o.SetURL(*v)
	}
	if v := data.GetRawTLSClientConfig(); v != nil {
		o.SetTLSClientConfig(v)
	}
	if v := data.GetRawExtraHeaders(); v != nil {
		o.SetExtraHeaders(v)
	}
	if v := data.GetRawDialTimeout(); v != nil {
		o.SetDialTimeout(*v)
	}
	if v := data.GetRawSendTimeout(); v != nil {
		o.SetSendTimeout(*v)
	}
	return o
}
