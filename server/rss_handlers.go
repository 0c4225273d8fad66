package server

import (
	"log"
	"net/http"
	"os"

	"github.com/umputun/feedmaker/pkg/workspace"
)

// rssHandler serves the published document of a feed
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	f, err := s.workspace.Feed(r.PathValue("group"), r.PathValue("feed"))
	if err != nil {
		http.Error(w, "feed not found", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(workspace.XMLPath(f))
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "feed not published", http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to read published feed %s: %v", f.ID(), err)
		http.Error(w, "failed to read feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
