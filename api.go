/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/cluebox/internal/apperror"
	"github.com/Seednode/cluebox/internal/game"
	"github.com/Seednode/cluebox/internal/profiles"
	"github.com/Seednode/cluebox/internal/selection"
	"github.com/Seednode/cluebox/internal/session"
)

const defaultCluesPerProfile = 5

// apiServer exposes the game core to UI collaborators over HTTP. It holds
// no game logic of its own: every operation loads a session, applies a pure
// mutation, and hands the result to the persistence service.
type apiServer struct {
	cfg     *Config
	loader  profiles.Loader
	engine  *selection.Engine
	persist *session.Service
	errs    *apperror.Service
	feeds   *feedManager
}

type createGameRequest struct {
	Players         []string `json:"players"`
	Categories      []string `json:"categories"`
	Rounds          int      `json:"rounds"`
	CluesPerProfile int      `json:"cluesPerProfile,omitempty"`
	Locale          string   `json:"locale,omitempty"`
}

type scoreRequest struct {
	PlayerID string `json:"playerId"`
	Points   int    `json:"points"`
	Op       string `json:"op"` // "award" or "remove"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the typed error taxonomy onto HTTP statuses. Only
// informative messages are surfaced verbatim; everything else gets a
// generic body so internal details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	var typed *apperror.Error
	if !errors.As(err, &typed) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch typed.Kind {
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindGame:
		status = http.StatusConflict
		if typed.Code == apperror.CodeGamePlayerNotFound ||
			typed.Code == apperror.CodeSelectionCategoryNotFound ||
			typed.Code == apperror.CodeSelectionLocaleNotFound {
			status = http.StatusNotFound
		}
	case apperror.KindNetwork:
		status = http.StatusBadGateway
	}

	body := map[string]any{"code": typed.Code}
	if typed.Informative || typed.Kind == apperror.KindValidation || typed.Kind == apperror.KindGame {
		body["error"] = typed.Message
	} else {
		body["error"] = "internal error"
	}
	writeJSON(w, status, body)
}

func (a *apiServer) report(err error) error {
	a.errs.Report(err)
	return err
}

// createGame builds, starts, and durably commits a new session: profile
// selection across the chosen categories, profile data load, then a forced
// save so the session is immediately loadable.
func (a *apiServer) createGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	startTime := time.Now()

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = a.cfg.locale
	}
	cluesPerProfile := req.CluesPerProfile
	if cluesPerProfile == 0 {
		cluesPerProfile = defaultCluesPerProfile
	}

	manifest, err := a.loader.Manifest()
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	selected, err := a.engine.Select(req.Categories, req.Rounds, manifest, locale)
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	loaded, err := a.loadSelected(req.Categories, selected, locale)
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	category := ""
	if len(req.Categories) == 1 {
		category = req.Categories[0]
	}
	g, err := game.NewGame(req.Players, cluesPerProfile, category)
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	sess, err := session.New(g, loaded, selected, req.Rounds).Start()
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	if err := a.persist.ForceSave(r.Context(), sess.ID, sess); err != nil {
		writeError(w, err)
		return
	}

	logf(a.cfg, "GAMES: Created game %s (%d players, %d rounds) for %s in %s",
		sess.ID, len(sess.Players), req.Rounds, realIP(r),
		time.Since(startTime).Round(time.Microsecond))

	writeJSON(w, http.StatusCreated, sess)
}

// loadSelected fetches profile data for each category and filters it down
// to the selected identifiers, preserving the data contract that every
// selected id exists in its category's files.
func (a *apiServer) loadSelected(categories, selected []string, locale string) ([]profiles.Profile, error) {
	wanted := make(map[string]bool, len(selected))
	for _, id := range selected {
		wanted[id] = true
	}

	var loaded []profiles.Profile
	for _, slug := range categories {
		all, err := a.loader.Profiles(slug, locale)
		if err != nil {
			return nil, err
		}
		for _, p := range all {
			if wanted[p.ID] {
				loaded = append(loaded, p)
			}
		}
	}

	if len(loaded) != len(selected) {
		return nil, apperror.NewPersistenceError(apperror.CodePersistenceLoadFailed,
			"profile data is missing selected profiles")
	}
	return loaded, nil
}

func (a *apiServer) getGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := a.persist.Load(r.Context(), ps.ByName("gameid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// mutate loads the session, applies fn, debounced-saves the result, and
// pushes the new snapshot to websocket subscribers.
func (a *apiServer) mutate(w http.ResponseWriter, r *http.Request, id string, fn func(session.Session) (session.Session, error)) {
	sess, err := a.persist.Load(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := fn(sess)
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	a.persist.DebouncedSave(id, updated)
	a.feeds.broadcast(id, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (a *apiServer) advanceClue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.mutate(w, r, ps.ByName("gameid"), func(s session.Session) (session.Session, error) {
		s, _, err := s.AdvanceClue()
		return s, err
	})
}

func (a *apiServer) revealProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.mutate(w, r, ps.ByName("gameid"), session.Session.Reveal)
}

func (a *apiServer) updateScore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	a.mutate(w, r, ps.ByName("gameid"), func(s session.Session) (session.Session, error) {
		switch req.Op {
		case "award":
			return s.AwardPoints(req.PlayerID, req.Points)
		case "remove":
			return s.RemovePoints(req.PlayerID, req.Points)
		default:
			return session.Session{}, apperror.NewValidationErrorf(apperror.CodeValidationOutOfRange,
				"op", "unknown score operation %q", req.Op)
		}
	})
}

func (a *apiServer) nextProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.mutate(w, r, ps.ByName("gameid"), func(s session.Session) (session.Session, error) {
		s, ok, err := s.NextProfile()
		if err != nil {
			return session.Session{}, err
		}
		if !ok {
			// Queue exhausted: the session is over.
			return s.End()
		}
		return s, nil
	})
}

// setLocale refetches the session's profile data in another display
// language and rebuilds the revealed clue history against it.
func (a *apiServer) setLocale(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		Locale string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Locale == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	a.mutate(w, r, ps.ByName("gameid"), func(s session.Session) (session.Session, error) {
		var categories []string
		seen := make(map[string]bool)
		for _, p := range s.Profiles {
			if !seen[p.Category] {
				seen[p.Category] = true
				categories = append(categories, p.Category)
			}
		}

		loaded, err := a.loadSelected(categories, s.SelectedProfiles, req.Locale)
		if err != nil {
			return session.Session{}, err
		}
		return s.RefreshLocale(loaded)
	})
}

// endGame completes the session and force-saves it so the final scores are
// durably committed before the caller navigates away. A failed save blocks
// with an error instead of being swallowed.
func (a *apiServer) endGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("gameid")

	sess, err := a.persist.Load(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	ended, err := sess.End()
	if err != nil {
		writeError(w, a.report(err))
		return
	}

	if err := a.persist.ForceSave(r.Context(), id, ended); err != nil {
		writeError(w, err)
		return
	}

	a.feeds.broadcast(id, ended)
	logf(a.cfg, "GAMES: Ended game %s for %s", id, realIP(r))
	writeJSON(w, http.StatusOK, ended)
}

// registerGameRoutes sets up the API and play surfaces:
//   - /api/games              → create a session
//   - /api/games/:gameid/...  → operate on a session
//   - /play/:gameid/ws        → websocket snapshot feed
//   - /play/:gameid/qr        → PNG QR code for sharing the session URL
func registerGameRoutes(cfg *Config, api *apiServer, mux *httprouter.Router) {
	mux.POST(cfg.prefix+"/api/games", api.createGame)
	mux.GET(cfg.prefix+"/api/games/:gameid", api.getGame)
	mux.POST(cfg.prefix+"/api/games/:gameid/clue", api.advanceClue)
	mux.POST(cfg.prefix+"/api/games/:gameid/reveal", api.revealProfile)
	mux.POST(cfg.prefix+"/api/games/:gameid/score", api.updateScore)
	mux.POST(cfg.prefix+"/api/games/:gameid/next", api.nextProfile)
	mux.POST(cfg.prefix+"/api/games/:gameid/locale", api.setLocale)
	mux.POST(cfg.prefix+"/api/games/:gameid/end", api.endGame)

	mux.GET(cfg.prefix+"/play/:gameid/ws", serveFeed(cfg, api))
	mux.GET(cfg.prefix+"/play/:gameid/qr", qrHandler)
}
