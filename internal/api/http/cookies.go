package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	SessionCookieName = "dreamteam_session"
	FlashCookieName   = "dreamteam_flash"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-time message shown on the next rendered page.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func readSessionCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}

	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}

	return value, true
}

func (s *Server) writeSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	s.expireCookie(w, SessionCookieName)
}

func (s *Server) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// flash stores a notice for the page rendered after the next redirect.
func (s *Server) flash(w http.ResponseWriter, kind NoticeKind, message string) {
	payload, err := json.Marshal(Notice{Kind: kind, Message: message})
	if err != nil {
		s.logger.Error("Error encoding flash notice", slog.String("error", err.Error()))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending notice. Malformed cookies are
// cleared and ignored.
func (s *Server) takeFlash(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return Notice{}, false
	}
	s.expireCookie(w, FlashCookieName)

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return Notice{}, false
	}

	var notice Notice
	if err = json.Unmarshal(decoded, &notice); err != nil || notice.Message == "" {
		return Notice{}, false
	}

	switch notice.Kind {
	case NoticeSuccess, NoticeInfo, NoticeError:
		return notice, true
	default:
		return Notice{}, false
	}
}
