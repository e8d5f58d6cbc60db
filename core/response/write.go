package response

import (
	"errors"
	"net/http"
	"strconv"
)

// Write serializes the response onto w: headers, one Set-Cookie line per
// directive, the status line and the body, in that order.
//
// Cookie directives are validated before anything is written, so an invalid
// cookie leaves w untouched and the caller can still send an error response.
// A missing Content-Type is left missing; net/http content sniffing is suppressed.
func (r *Response) Write(w http.ResponseWriter) error {
	lines := make([]string, 0, len(r.cookies))
	var errs []error
	for _, c := range r.cookies {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, c.String())
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidResponse}, errs...)...)
	}

	h := w.Header()
	for k, v := range r.Header {
		h.Set(k, v)
	}
	for _, line := range lines {
		h.Add("Set-Cookie", line)
	}
	if _, ok := r.Header["Content-Type"]; !ok && h.Get("Content-Type") == "" {
		h["Content-Type"] = nil
	}

	body := r.Body()
	if h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(body)))
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(body) == 0 {
		return nil
	}
	_, err := w.Write(body)
	return err
}
