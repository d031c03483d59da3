// Package templates renders the transactional emails from embedded templates.
// Every template ships as a <name>.html and <name>.txt pair.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Rendered is one email body in both formats.
type Rendered struct {
	HTML string
	Text string
}

// Renderer executes the parsed template sets.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates. It fails if any template does not parse.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// Render executes both formats of the template for t.
func (r *Renderer) Render(t entity.EmailTemplateType, data interface{}) (Rendered, error) {
	name := string(t)

	var html bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Rendered{}, fmt.Errorf("failed to render %s html: %w", name, err)
	}

	var text bytes.Buffer
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Rendered{}, fmt.Errorf("failed to render %s text: %w", name, err)
	}

	return Rendered{HTML: html.String(), Text: text.String()}, nil
}

// BudgetExceededData fills the budget_exceeded template.
// Amounts are preformatted with two decimals.
type BudgetExceededData struct {
	UserName     string
	CategoryName string
	Month        string
	Budget       string
	Spent        string
	Overspent    string
	BudgetsURL   string
}

// BudgetExceededFromJob reads the template data stored on a queued job.
// Missing keys render as empty strings.
func BudgetExceededFromJob(data map[string]string) BudgetExceededData {
	return BudgetExceededData{
		UserName:     data["user_name"],
		CategoryName: data["category_name"],
		Month:        data["month"],
		Budget:       data["budget"],
		Spent:        data["spent"],
		Overspent:    data["overspent"],
		BudgetsURL:   data["budgets_url"],
	}
}
