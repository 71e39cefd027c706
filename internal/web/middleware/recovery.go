package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/nrowgame/internal/middleware"
	"github.com/mcoot/nrowgame/internal/web/templates/layout"
	"github.com/mcoot/nrowgame/internal/web/templates/pages"
)

// Recovery renders an HTML error page when a page handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = pages.Error(layout.PageData{Title: "Error"}, "Something went wrong. Please try again later.").Render(r.Context(), w)
}
