package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/shlok"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"lines":   lines,
	"percent": percent,
}).ParseFS(templateFS, "templates/*.html"))

// pageData is the view model of the navigation page.
type pageData struct {
	Nav     shlok.Navigation
	Verse   *shlok.Verse
	Message string
	PrevURL string
	NextURL string
}

// handlePage renders the navigation page for a verse. A non-numeric index
// falls back to the first verse.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	index, err := shlok.ParseIndex(chi.URLParam(r, "index"))
	if err != nil {
		index = 1
	}

	data := pageData{
		Nav:     shlok.Navigate(index, s.chapters),
		NextURL: verseURL(index + 1),
	}
	if !data.Nav.AtFirst {
		data.PrevURL = verseURL(data.Nav.Prev)
	}

	status := http.StatusOK
	v, err := s.verses.FindVerse(r.Context(), index)
	switch shlok.ErrorCode(err) {
	case "":
		data.Verse = v
	case shlok.ENOTFOUND:
		status = http.StatusNotFound
		data.Message = "Shlok not found."
	default:
		s.logger.Error("render page",
			"index", index,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		status = http.StatusInternalServerError
		data.Message = "Unable to load shlok."
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderVerseCard renders the HTML fragment that presents a single verse.
func RenderVerseCard(v *shlok.Verse) (string, error) {
	if v == nil {
		return "", shlok.Errorf(shlok.EINVALID, "verse required")
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "card", v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func verseURL(index int) string {
	return "/shlok/" + strconv.Itoa(index)
}

// lines escapes s and turns newlines into line breaks.
func lines(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// percent formats a timeline offset as a CSS percentage.
func percent(p float64) template.CSS {
	return template.CSS(fmt.Sprintf("%.2f%%", p))
}
