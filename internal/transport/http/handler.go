package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"

	"horror-quiz-service/internal/app"
	"horror-quiz-service/internal/domain"
	"horror-quiz-service/web"
)

const pageTitle = "Horror Heroes Quiz"

// Options points the handler at on-disk assets; empty fields use the embedded copies.
type Options struct {
	StaticDir    string
	TemplatePath string
}

// Handler serves the quiz page, the read-only JSON API and the static assets.
type Handler struct {
	service *app.QuizService
	page    *template.Template
	static  http.Handler
}

func NewHandler(service *app.QuizService, opts Options) (*Handler, error) {
	page, err := loadPage(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	static, err := staticFiles(opts.StaticDir)
	if err != nil {
		return nil, err
	}
	return &Handler{service: service, page: page, static: static}, nil
}

func loadPage(path string) (*template.Template, error) {
	if path != "" {
		page, err := template.ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
		return page, nil
	}
	page, err := template.ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded template: %w", err)
	}
	return page, nil
}

func staticFiles(dir string) (http.Handler, error) {
	if dir != "" {
		return http.FileServerFS(filesOnly{fsys: os.DirFS(dir)}), nil
	}
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return http.FileServerFS(filesOnly{fsys: sub}), nil
}

// filesOnly hides directories so the file server answers 404 instead of a listing.
type filesOnly struct {
	fsys fs.FS
}

func (f filesOnly) Open(name string) (fs.File, error) {
	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// Routes registers every endpoint on a fresh mux wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /api/levels", h.ListLevels)
	mux.HandleFunc("GET /api/level/{level_id}", h.GetLevel)
	mux.HandleFunc("GET /api/stats", h.Stats)
	mux.Handle("GET /static/", http.StripPrefix("/static", h.static))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return RequestLogger(mux)
}

type pageData struct {
	Title string
	Path  string
}

// Home renders the client shell.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, pageData{Title: pageTitle, Path: r.URL.Path}); err != nil {
		log.Printf("render page failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type levelsResponse struct {
	Levels []domain.LevelSummary `json:"levels"`
}

type levelResponse struct {
	Level domain.Level `json:"level"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListLevels handles GET /api/levels.
func (h *Handler) ListLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, levelsResponse{Levels: h.service.ListLevels()})
}

// GetLevel handles GET /api/level/{level_id}.
func (h *Handler) GetLevel(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("level_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		if isInteger(raw) {
			// Too large for int, so no level can carry it.
			writeError(w, http.StatusNotFound, "Level not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "Invalid level id")
		return
	}
	level, err := h.service.GetLevel(id)
	switch {
	case errors.Is(err, domain.ErrLevelNotFound):
		writeError(w, http.StatusNotFound, "Level not found")
	case err != nil:
		log.Printf("get level %d failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	default:
		writeJSON(w, http.StatusOK, levelResponse{Level: level})
	}
}

// isInteger reports whether s is an optionally signed run of decimal digits.
func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode response failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
