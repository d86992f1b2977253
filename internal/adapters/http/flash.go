package httpadapter

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

const (
	flashCookieName   = "dem_flash"
	flashMaxAgeSecond = 60
	maxFlashMessage   = 512
)

// flash carries one alert across a redirect.
type flash struct {
	Severity domain.Severity `json:"severity"`
	Message  string          `json:"message"`
	Field    domain.Field    `json:"field,omitempty"`
}

func (f flash) alert() domain.Alert {
	if f.Severity == domain.SeveritySuccess {
		return domain.SuccessAlert(domain.CategoryFlash, f.Message)
	}
	return domain.ErrorAlert(domain.CategoryFlash, f.Message)
}

var (
	flashPolicyOnce sync.Once
	flashPolicy     *bluemonday.Policy
)

// sanitizeFlashMessage strips any markup. The cookie comes back from the
// client, so its text is untrusted.
func sanitizeFlashMessage(raw string) string {
	flashPolicyOnce.Do(func() {
		flashPolicy = bluemonday.StrictPolicy()
	})
	cleaned := strings.TrimSpace(html.UnescapeString(flashPolicy.Sanitize(raw)))
	if len(cleaned) > maxFlashMessage {
		cleaned = cleaned[:maxFlashMessage]
	}
	return cleaned
}

func setFlash(w http.ResponseWriter, f flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   flashMaxAgeSecond,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash, if any.
func popFlash(w http.ResponseWriter, r *http.Request) (flash, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return flash{}, false
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return flash{}, false
	}
	f.Message = sanitizeFlashMessage(f.Message)
	if f.Message == "" {
		return flash{}, false
	}
	if f.Severity != domain.SeveritySuccess {
		f.Severity = domain.SeverityError
	}
	return f, true
}
