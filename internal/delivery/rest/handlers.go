package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"playbook/internal/application"
	"playbook/internal/models"
	"playbook/pkg/config"
	"playbook/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	maxBodyBytes     = 1 << 16
	dateLayout       = "2006-01-02"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	bannerCacheAge   = "public, max-age=86400"
	placeholderCache = "public, max-age=3600"
)

type Handler struct {
	app     *application.Service
	session config.SessionConfig
	logger  *logger.Logger
	now     func() time.Time
}

func NewHandler(app *application.Service, session config.SessionConfig, log *logger.Logger) *Handler {
	return &Handler{app: app, session: session, logger: log, now: time.Now}
}

func (h *Handler) auth() SessionParser {
	return h.app.Auth
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type preferencesRequest struct {
	Language string `json:"language"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	viewer, err := h.app.Auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.startSession(w, r, viewer)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var form models.Signup
	if !h.decode(w, r, &form) {
		return
	}
	viewer, err := h.app.Auth.Signup(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.startSession(w, r, viewer)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.app.Games.Teams(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	viewer, _ := viewerFromContext(r.Context())
	writeJSON(w, http.StatusOK, viewer)
}

// UpdatePreferences stores the language and reissues the session, which
// carries the language.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !h.decode(w, r, &req) {
		return
	}
	lang, err := models.ParseLanguage(req.Language)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	viewer, _ := viewerFromContext(r.Context())
	updated, err := h.app.Auth.UpdateLanguage(r.Context(), *viewer, lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.startSession(w, r, updated)
}

func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}
	games, err := h.app.Games.Schedule(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) SeasonSchedule(w http.ResponseWriter, r *http.Request) {
	year, ok := h.intVar(w, r, "year")
	if !ok {
		return
	}
	games, err := h.app.Games.SeasonSchedule(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) SeasonWorkbook(w http.ResponseWriter, r *http.Request) {
	year, ok := h.intVar(w, r, "year")
	if !ok {
		return
	}
	data, err := h.app.Games.SeasonWorkbook(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="mlb_schedule_%d.xlsx"`, year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type publishResponse struct {
	URL string `json:"url"`
}

// PublishSeason mirrors the season schedule into the shared Google Sheet.
func (h *Handler) PublishSeason(w http.ResponseWriter, r *http.Request) {
	year, ok := h.intVar(w, r, "year")
	if !ok {
		return
	}
	url, err := h.app.Games.PublishSeason(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publishResponse{URL: url})
}

func (h *Handler) Game(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	game, err := h.app.Feed.Game(r.Context(), gamePK)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// Plays runs the render pass over the latest plays of a game.
func (h *Handler) Plays(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}
	lang, ok := h.language(w, r)
	if !ok {
		return
	}
	feed, err := h.app.Feed.RenderPlays(r.Context(), lang, gamePK, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	lang, ok := h.language(w, r)
	if !ok {
		return
	}
	card, err := h.app.Feed.RenderPlay(r.Context(), lang, gamePK, mux.Vars(r)["playId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	var req askRequest
	if !h.decode(w, r, &req) {
		return
	}
	lang, ok := h.language(w, r)
	if !ok {
		return
	}
	answer, err := h.app.Chat.Ask(r.Context(), lang, gamePK, mux.Vars(r)["playId"], req.Question)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

func (h *Handler) Lineups(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	players, err := h.app.Games.Lineups(r.Context(), gamePK, r.URL.Query().Get("side"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) Highlights(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	highlights, err := h.app.Games.Highlights(r.Context(), gamePK)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	gamePK, ok := h.intVar(w, r, "gamePk")
	if !ok {
		return
	}
	thumbnail := strings.EqualFold(r.URL.Query().Get("size"), "thumb")
	data, err := h.app.Banners.Banner(r.Context(), gamePK, mux.Vars(r)["playId"], thumbnail)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeImage(w, data, bannerCacheAge)
}

func (h *Handler) Placeholder(w http.ResponseWriter, r *http.Request) {
	data, err := placeholderBanner()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeImage(w, data, placeholderCache)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, viewer *models.Viewer) {
	token, expires, err := h.app.Auth.IssueToken(*viewer)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, viewer)
}

// language is the viewer's session language unless the request names
// another supported one with ?lang=.
func (h *Handler) language(w http.ResponseWriter, r *http.Request) (models.Language, bool) {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		lang, err := models.ParseLanguage(raw)
		if err != nil {
			h.fail(w, r, err)
			return "", false
		}
		return lang, true
	}
	if viewer, ok := viewerFromContext(r.Context()); ok && viewer.Language.Valid() {
		return viewer.Language, true
	}
	return models.BaseLanguage, true
}

func (h *Handler) intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError && !errors.Is(err, application.ErrSummaryUnavailable) {
		h.logger.With("requestId", requestIDFromContext(r.Context())).
			Error("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeError(w, r, status, message)
}
