package observability

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// TraceHandler wraps an HTTP handler with X-Ray segment capture. Used by
// the API entrypoint when tracing is enabled; Lambda invocations get their
// segments from the runtime instead.
func TraceHandler(serviceName string, handler http.Handler) http.Handler {
	return xray.Handler(xray.NewFixedSegmentNamer(serviceName), handler)
}
