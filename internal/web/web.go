package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/domains/event/model"
	"event-manager/internal/domains/event/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const inputLayout = "2006-01-02T15:04"

// ClientConfig is handed to the browser script
type ClientConfig struct {
	APIBase        string `json:"apiBase"`
	Cluster        string `json:"cluster"`
	RPCURL         string `json:"rpcUrl"`
	MetadataURI    string `json:"metadataUri"`
	Symbol         string `json:"symbol"`
	SignInMessage  string `json:"signInMessage"`
	UploadsEnabled bool   `json:"uploadsEnabled"`
	MintTimeoutMs  int    `json:"mintTimeoutMs"`
}

// NewClientConfig derives the browser settings from the app config
func NewClientConfig(cfg *config.Config, uploadsEnabled bool) ClientConfig {
	return ClientConfig{
		APIBase:        "/api/v1",
		Cluster:        cfg.Solana.Cluster,
		RPCURL:         cfg.Solana.RPCURL,
		MetadataURI:    cfg.Solana.MetadataURI,
		Symbol:         cfg.Solana.Symbol,
		SignInMessage:  cfg.Wallet.SignInMessage,
		UploadsEnabled: uploadsEnabled,
		MintTimeoutMs:  60000,
	}
}

// Pages renders the server side HTML client
type Pages struct {
	events service.ServiceInterface
	client ClientConfig
}

func NewPages(events service.ServiceInterface, client ClientConfig) *Pages {
	return &Pages{events: events, client: client}
}

var funcs = template.FuncMap{
	"inputTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(inputLayout)
	},
	"displayTime": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 15:04 MST")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// ParseTemplates loads the embedded page templates
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Register installs templates, static assets and page routes on r
func (p *Pages) Register(r *gin.Engine) error {
	tmpl, err := ParseTemplates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/events") })
	r.GET("/events", p.List)
	r.GET("/events/create", p.Create)
	r.GET("/events/:id", p.Detail)
	r.GET("/events/:id/edit", p.Edit)
	return nil
}

func (p *Pages) render(c *gin.Context, status int, name string, data gin.H) {
	data["Config"] = p.client
	c.HTML(status, name, data)
}

func (p *Pages) List(c *gin.Context) {
	events, err := p.events.ListEvents(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("render events page")
		p.render(c, http.StatusInternalServerError, "error.html", gin.H{"Title": "Events", "Message": "Failed to load events."})
		return
	}
	p.render(c, http.StatusOK, "list.html", gin.H{"Title": "Events", "Events": events})
}

func (p *Pages) Create(c *gin.Context) {
	p.render(c, http.StatusOK, "form.html", gin.H{
		"Title":  "Create Event",
		"Event":  model.Event{},
		"Method": http.MethodPost,
		"Action": p.client.APIBase + "/events",
	})
}

func (p *Pages) Detail(c *gin.Context) {
	event, ok := p.load(c)
	if !ok {
		return
	}
	p.render(c, http.StatusOK, "detail.html", gin.H{"Title": event.Title, "Event": event})
}

func (p *Pages) Edit(c *gin.Context) {
	event, ok := p.load(c)
	if !ok {
		return
	}
	p.render(c, http.StatusOK, "form.html", gin.H{
		"Title":  "Edit Event",
		"Event":  event,
		"Method": http.MethodPut,
		"Action": p.client.APIBase + "/events/" + event.ID,
	})
}

func (p *Pages) load(c *gin.Context) (*model.Event, bool) {
	event, err := p.events.GetEvent(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		return event, true
	case model.IsNotFound(err) || model.IsInvalidID(err):
		p.render(c, http.StatusNotFound, "error.html", gin.H{"Title": "Not found", "Message": "Event not found."})
	default:
		log.Error().Err(err).Str("event_id", c.Param("id")).Msg("render event page")
		p.render(c, http.StatusInternalServerError, "error.html", gin.H{"Title": "Error", "Message": "Failed to load event."})
	}
	return nil, false
}
