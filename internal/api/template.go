package api

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/rishav-dahal/studyapp/internal/database"
)

//go:embed templates
var templatesFS embed.FS

// templateData is the single context passed to every page template. Handlers
// fill in whichever fields their page reads.
type templateData struct {
	Authenticated bool
	UserId        int
	Page          string
	Errors        []string
	Q             string
	Rooms         []database.Room
	Topics        []database.Topic
	RoomCount     int
	RoomMessages  []database.Message
	Room          database.Room
	Messages      []database.Message
	Participants  []database.User
	User          database.User
	DeleteObj     string
}

func NewTemplateCache() (map[string]*template.Template, error) {
	tmplCache := make(map[string]*template.Template)

	pages, err := fs.Glob(templatesFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)
		patterns := []string{
			"templates/base.html.tmpl",
			page,
		}

		ts, err := template.New(name).ParseFS(templatesFS, patterns...)
		if err != nil {
			return nil, err
		}

		tmplCache[name] = ts
	}

	return tmplCache, nil
}

func (s *StudyApp) render(w http.ResponseWriter, tmplName string, data templateData) error {
	tmpl, ok := s.templates[tmplName]
	if !ok {
		return fmt.Errorf("template %q not in cache", tmplName)
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}

func (s *StudyApp) newTemplateData(r *http.Request) templateData {
	var data templateData
	if userId, ok := s.currentUserId(r); ok {
		data.Authenticated = true
		data.UserId = userId
	}

	return data
}
