package web

import "embed"

//go:generate go tool github.com/a-h/templ/cmd/templ generate

// Static holds the stylesheet and other assets served under /static
//
//go:embed static
var Static embed.FS

// StylesheetPath is where the embedded stylesheet is served
const StylesheetPath = "/static/css/app.css"
