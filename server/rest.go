package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/workspace"
)

// runResponse is the JSON view of a run report
type runResponse struct {
	Feed       string `json:"feed"`
	Considered int    `json:"considered"`
	Emitted    int    `json:"emitted"`
	Dropped    int    `json:"dropped"`
	Published  bool   `json:"published"`
	Duration   string `json:"duration"`
	Kind       string `json:"kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// groupsHandler lists groups
func (s *Server) groupsHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := s.workspace.Groups()
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	if groups == nil {
		groups = []workspace.Group{}
	}
	renderJSON(w, r, http.StatusOK, groups)
}

// feedsHandler lists feeds of a group
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.workspace.Feeds(r.PathValue("group"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	if feeds == nil {
		feeds = []workspace.FeedEntry{}
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// getConfigHandler returns conf.json of the feed as is
func (s *Server) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.workspace.ReadConfig(r.PathValue("group"), r.PathValue("feed"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		log.Printf("[WARN] failed to write config response: %v", err)
	}
}

// putConfigHandler validates and stores conf.json, creates the feed if missing
func (s *Server) putConfigHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("can't read request body: %w", err), http.StatusBadRequest)
		return
	}
	group, name := r.PathValue("group"), r.PathValue("feed")
	if err := s.workspace.WriteConfig(group, name, data); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	log.Printf("[INFO] config of %s/%s updated", group, name)
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// runHandler runs the feed now and returns its report. The run is not bound to the client connection.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	f, err := s.workspace.Feed(r.PathValue("group"), r.PathValue("feed"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}

	rep, err := s.scheduler.RunFeedNow(context.WithoutCancel(r.Context()), f)
	resp := runResponse{
		Feed:       f.ID(),
		Considered: rep.Considered,
		Emitted:    rep.Emitted,
		Dropped:    rep.Dropped,
		Published:  rep.Published,
		Duration:   rep.Duration.Truncate(time.Millisecond).String(),
	}
	if err != nil {
		resp.Kind = domain.KindOf(err)
		resp.Error = err.Error()
		renderJSON(w, r, statusCode(err), resp)
		return
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// toggleFeedHandler enables or disables the feed
func (s *Server) toggleFeedHandler(w http.ResponseWriter, r *http.Request) {
	name, err := s.workspace.Toggle(r.PathValue("group"), r.PathValue("feed"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"name": name, "enabled": name[0] != '_'})
}

// toggleGroupHandler enables or disables the group
func (s *Server) toggleGroupHandler(w http.ResponseWriter, r *http.Request) {
	name, err := s.workspace.ToggleGroup(r.PathValue("group"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"name": name, "enabled": name[0] != '_'})
}

// renameHandler renames the feed, expects {"name": "new-name"}
func (s *Server) renameHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		renderError(w, r, fmt.Errorf("name is required"), http.StatusBadRequest)
		return
	}
	if err := s.workspace.Rename(r.PathValue("group"), r.PathValue("feed"), req.Name); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"name": req.Name})
}

// removeFeedHandler deletes the feed with its published copy and images
func (s *Server) removeFeedHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.workspace.RemoveFeed(r.PathValue("group"), r.PathValue("feed")); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeSnapshotsHandler deletes list snapshots
func (s *Server) removeSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.workspace.RemoveSnapshots(r.PathValue("group"), r.PathValue("feed")); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeArtifactsHandler deletes all item artifacts
func (s *Server) removeArtifactsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.workspace.RemoveArtifacts(r.PathValue("group"), r.PathValue("feed")); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeArtifactHandler deletes one artifact
func (s *Server) removeArtifactHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.workspace.RemoveArtifact(r.PathValue("group"), r.PathValue("feed"), r.PathValue("file")); err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// progressHandler reports the window position of a completed feed
func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.workspace.Progress(r.PathValue("group"), r.PathValue("feed"), time.Now())
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, p)
}

// publishInfoHandler reports size, item count and mtime of the published document
func (s *Server) publishInfoHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.workspace.PublishInfo(r.PathValue("group"), r.PathValue("feed"))
	if err != nil {
		renderWorkspaceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, info)
}

// statusCode maps workspace and run errors to http status
func statusCode(err error) int {
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrExists), errors.Is(err, domain.ErrFeedBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConfigInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrCollectionFailed), errors.Is(err, domain.ErrNothingToPublish):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func renderWorkspaceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	}
	renderError(w, r, err, code)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
