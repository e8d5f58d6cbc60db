package middleware

import (
	"maps"

	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
)

// SecurityHeadersConfig lists the security headers to set. Empty fields are
// not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool

	ContentTypeOptions        string
	FrameOptions              string
	XSSProtection             string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	CrossOriginOpenerPolicy   string
	CrossOriginEmbedderPolicy string
	CrossOriginResourcePolicy string

	// CustomHeaders are added after the fields above and override them
	CustomHeaders map[string]string

	// IsDevelopment drops Strict-Transport-Security
	IsDevelopment bool
}

// Presets.
var (
	// StrictSecurity provides maximum security with strict policies.
	// Use this for applications requiring highest security standards.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		ContentSecurityPolicy:     "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self'; font-src 'self'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginResourcePolicy: "same-origin",
	}

	// BalancedSecurity provides good security with compatibility.
	// Use this for most web applications.
	BalancedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "SAMEORIGIN",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
		CrossOriginOpenerPolicy:   "same-origin-allow-popups",
		CrossOriginResourcePolicy: "cross-origin",
	}

	// RelaxedSecurity provides basic security for maximum compatibility.
	// Use this only when strict policies break functionality.
	RelaxedSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		XSSProtection:      "1; mode=block",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// DevelopmentSecurity provides minimal security for local development.
	// WARNING: Never use in production.
	DevelopmentSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		XSSProtection:      "1; mode=block",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      true,
	}
)

// SecurityHeaders sets the BalancedSecurity preset on the default response.
func SecurityHeaders() handler.Middleware {
	return SecurityHeadersWithConfig(BalancedSecurity)
}

// SecurityHeadersStrict sets the StrictSecurity preset. It blocks inline
// scripts, external resources and framing, so test pages before enabling it.
func SecurityHeadersStrict() handler.Middleware {
	return SecurityHeadersWithConfig(StrictSecurity)
}

// SecurityHeadersRelaxed sets the RelaxedSecurity preset.
func SecurityHeadersRelaxed() handler.Middleware {
	return SecurityHeadersWithConfig(RelaxedSecurity)
}

// SecurityHeadersWithConfig sets the headers described by cfg on the default
// response. Responses built by handlers themselves are not touched.
//
//	cfg := middleware.BalancedSecurity
//	cfg.ContentSecurityPolicy = "default-src 'self'; img-src 'self' data:"
//	app.Use(middleware.SecurityHeadersWithConfig(cfg))
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) handler.Middleware {
	headers := cfg.Headers()

	return func(req *request.Request, resp *response.Response) (*response.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return nil, nil
		}
		for key, value := range headers {
			resp.SetHeader(key, value)
		}
		return nil, nil
	}
}

// Headers returns the header set described by cfg.
func (cfg SecurityHeadersConfig) Headers() map[string]string {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			headers[key] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("X-XSS-Protection", cfg.XSSProtection)
	set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)

	maps.Copy(headers, cfg.CustomHeaders)
	return headers
}
