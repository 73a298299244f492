package dialer

import (
	"context"
	"net"
	"net/http/httptrace"
	"reflect"
)

// The net and net/http packages fire trace callbacks they find on the
// context. A context handed in from inside a standard library round trip
// still carries those hooks, and they would fire again for every dial the
// pool makes, on sockets the outer trace never heard of. Both key types
// are unexported, so they are captured once at startup by offering the
// standard dialer a context that records whatever it asks for.

var stdNetTraceKey, stdHTTPTraceKey interface{}

type keyCapture struct {
	context.Context
	capture func(reflect.Type)
}

func (c keyCapture) Value(key interface{}) interface{} {
	c.capture(reflect.TypeOf(key))
	return nil
}

func init() {
	var netKey, httpKey reflect.Type

	capture := keyCapture{context.Background(), nil}
	capture.capture = func(t reflect.Type) { netKey = t }
	(&net.Dialer{}).DialContext(capture, "invalid", "")
	capture.capture = func(t reflect.Type) { httpKey = t }
	httptrace.ContextClientTrace(capture)

	stdNetTraceKey = reflect.New(netKey).Elem().Interface()
	stdHTTPTraceKey = reflect.New(httpKey).Elem().Interface()
}

// shadowClientTrace masks the httptrace hooks on ctx, if any.
func shadowClientTrace(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, stdHTTPTraceKey, nil)
	ctx = context.WithValue(ctx, stdNetTraceKey, nil)
	return ctx
}
