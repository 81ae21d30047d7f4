package middleware

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/vova616/xxhash"
)

type requestLogger struct {
	buf *bytes.Buffer
}

func newRequestLogger() *requestLogger {
	return &requestLogger{
		buf: &bytes.Buffer{},
	}
}

func (r *requestLogger) write(format string, args ...interface{}) {
	fmt.Fprintf(r.buf, format, args...)
}

func (r *requestLogger) requestID(id string) *requestLogger {
	if id != "" {
		r.write("[%s] ", id)
	}
	return r
}

func (r *requestLogger) requestType(reqType string) *requestLogger {
	r.write("%s ", reqType)
	return r
}

func (r *requestLogger) request(path string) *requestLogger {
	cs := strings.Split(path, "/")
	written := false
	for _, c := range cs {
		if c != "" {
			r.write("/%s", c)
			written = true
		}
	}
	if !written {
		r.write("/")
	}
	return r
}

func (r *requestLogger) params(rawQuery string) *requestLogger {
	if rawQuery != "" {
		// hash query params
		r.write("?%#x ", xxhash.Checksum32([]byte(rawQuery)))
	} else {
		r.buf.WriteString(" ")
	}
	return r
}

func (r *requestLogger) status(status int) *requestLogger {
	r.write("%03d", status)
	return r
}

func (r *requestLogger) size(bytes int) *requestLogger {
	r.write(" %dB", bytes)
	return r
}

func (r *requestLogger) duration(duration time.Duration) *requestLogger {
	r.buf.WriteString(" in ")
	r.write("%.2fms", duration.Seconds()*1000)
	return r
}

func (r *requestLogger) render() *bytes.Buffer {
	return r.buf
}
