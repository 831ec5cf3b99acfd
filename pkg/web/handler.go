package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	actionUpdateFiles = "update_files"
	actionDBToken     = "db_token"
	actionLoginDemo   = "login_demo"

	animationTokenUpdated = "token-updated"

	contentTypeHTML = "text/html; charset=utf-8"
)

// page holds what a single render shows besides the stored token.
type page struct {
	message     string
	err         string
	token       *string
	dbResult    string
	loginResult string
	fromDB      bool
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, page{})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleAction(c echo.Context) error {
	switch strings.TrimSpace(c.FormValue("action")) {
	case actionUpdateFiles:
		return s.render(c, s.updateFiles(c))
	case actionDBToken:
		return s.render(c, s.dbToken(c))
	case actionLoginDemo:
		return s.render(c, s.loginDemo(c))
	default:
		return s.render(c, page{err: "Unknown action."})
	}
}

func (s *Server) updateFiles(c echo.Context) page {
	token := strings.TrimSpace(c.FormValue("token"))
	if token == "" {
		return page{err: "Token cannot be empty."}
	}

	if err := s.svc.UpdateTokenManually(c.Request().Context(), token); err != nil {
		return page{err: fmt.Sprintf("Error updating the files: %v", err)}
	}
	return page{
		message: "Token updated in both files.",
		token:   &token,
	}
}

func (s *Server) dbToken(c echo.Context) page {
	id := strings.TrimSpace(c.FormValue("provisioningId"))
	if id == "" {
		return page{err: "ProvisioningId cannot be empty to fetch the token from the DB."}
	}

	token, err := s.svc.UpdateTokenFromDatabase(c.Request().Context(), id)
	if err != nil {
		return page{err: fmt.Sprintf("Error fetching the token from the DB: %v", err)}
	}
	return page{
		message:  "Token fetched from the DB and written to the files.",
		token:    &token,
		dbResult: fmt.Sprintf("CPPR_PROVISIONINGID = %s\n\nToken returned by the DB:\n%s", id, token),
		fromDB:   true,
	}
}

func (s *Server) loginDemo(c echo.Context) page {
	id := strings.TrimSpace(c.FormValue("provisioningId"))
	if id == "" {
		return page{err: "ProvisioningId cannot be empty for the login demo."}
	}

	result, err := s.svc.PerformLogin(c.Request().Context(), id,
		strings.TrimSpace(c.FormValue("section")),
		strings.TrimSpace(c.FormValue("locale")))
	if err != nil {
		return page{err: err.Error()}
	}
	return page{
		message:     "Login demo executed. Check the result below.",
		loginResult: result.Format(),
	}
}

func (s *Server) render(c echo.Context, p page) error {
	ctx := c.Request().Context()

	var current string
	if p.token != nil {
		current = *p.token
	} else {
		current = s.svc.GetCurrentToken(ctx)
	}

	animation := ""
	if p.fromDB {
		animation = animationTokenUpdated
	}

	tokenInfo := ""
	if info, err := s.svc.InspectCurrentToken(ctx); err == nil {
		tokenInfo = "<pre>" + EscapeHTML(info.Summary()) + "</pre>"
	}

	html, err := s.renderer.Render("index.html", map[string]string{
		"msg_block":             messageBlock(p.message, p.err),
		"current_token":         EscapeHTML(current),
		"json_path":             EscapeHTML(s.cfg.JSONPath),
		"js_path":               EscapeHTML(s.cfg.JSPath),
		"db_result_block":       resultBlock("📊 Result:", p.dbResult),
		"login_result_block":    resultBlock("📋 Server response:", p.loginResult),
		"token_animation_class": animation,
		"token_info_block":      tokenInfo,
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentTypeHTML, []byte(html))
}

func messageBlock(message, errMsg string) string {
	var b strings.Builder
	if message != "" {
		b.WriteString(`<div class="alert alert-success">✅ ` + EscapeHTML(message) + `</div>`)
	}
	if errMsg != "" {
		b.WriteString(`<div class="alert alert-error">❌ ` + EscapeHTML(errMsg) + `</div>`)
	}
	return b.String()
}

func resultBlock(title, result string) string {
	if result == "" {
		return ""
	}
	return "<h3>" + title + "</h3><pre>" + EscapeHTML(result) + "</pre>"
}
