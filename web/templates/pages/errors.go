package pages

import (
	"github.com/a-h/templ"
)

// ErrorPageProps holds the content of an error page
type ErrorPageProps struct {
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

func (p ErrorPageProps) backText() string {
	if p.BackText == "" {
		return "Go back home"
	}
	return p.BackText
}

// NotFound is the placeholder rendered for paths outside the route table
func NotFound() templ.Component {
	return ErrorPage(ErrorPageProps{
		ErrorTitle:   "Page Not Found",
		ErrorMessage: "The page you're looking for doesn't exist.",
		BackLink:     "/",
		BackText:     "Go back home",
	})
}
