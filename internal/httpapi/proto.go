package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"google.golang.org/protobuf/proto"
)

// maxRequestBody caps the request body size for both protobuf and JSON
// payloads. Gate terminals send a single identifier, so 4 KiB is generous.
const maxRequestBody = 4096

const contentTypeProtobuf = "application/x-protobuf"

var errBodyTooLarge = errors.New("request body too large")

// isProtobuf reports whether the Content-Type names a protobuf payload.
// Parameters such as "; proto=google.protobuf.Struct" are ignored.
func isProtobuf(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	switch mt {
	case contentTypeProtobuf, "application/protobuf", "application/octet-stream":
		return true
	}
	return false
}

// readProto unmarshals the request body into msg. Bodies over
// maxRequestBody are rejected rather than truncated.
func readProto(r *http.Request, msg proto.Message) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return err
	}
	if len(body) > maxRequestBody {
		return errBodyTooLarge
	}
	return proto.Unmarshal(body, msg)
}

// writeProto marshals msg and writes it with the given HTTP status.
func writeProto(w http.ResponseWriter, status int, msg proto.Message) {
	data, err := proto.Marshal(msg)
	if err != nil {
		// Fall back to a plain-text error if marshalling fails.
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeProtobuf)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
