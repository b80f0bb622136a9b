package middleware

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// multipartPeekLimit bounds how much of a multipart body is buffered while
// looking for the _method field
const multipartPeekLimit = 64 << 10

// MethodOverride lets HTML forms issue PUT and DELETE by posting a _method
// field. It wraps the router because gin matches routes before running
// engine middleware. Request bodies are capped at maxBody bytes.
func MethodOverride(maxBody int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		if r.Method == http.MethodPost {
			if m := strings.ToUpper(overrideValue(r)); m == http.MethodPut || m == http.MethodPatch || m == http.MethodDelete {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideValue(r *http.Request) string {
	if m := r.Header.Get("X-HTTP-Method-Override"); m != "" {
		return m
	}
	if m := r.URL.Query().Get("_method"); m != "" {
		return m
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		return multipartMethod(r)
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return r.PostFormValue("_method")
	}
	return ""
}

// multipartMethod scans the leading text parts for _method and stops at the
// first file part, so an oversized upload still routes by its override.
// The bytes read are put back in front of the body for the handler.
func multipartMethod(r *http.Request) string {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || params["boundary"] == "" {
		return ""
	}
	var seen bytes.Buffer
	body := r.Body
	defer func() {
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(&seen, body), body}
	}()

	mr := multipart.NewReader(io.TeeReader(io.LimitReader(body, multipartPeekLimit), &seen), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err != nil || part.FileName() != "" {
			return ""
		}
		if part.FormName() == "_method" {
			v, _ := io.ReadAll(io.LimitReader(part, 16))
			return strings.TrimSpace(string(v))
		}
	}
}
