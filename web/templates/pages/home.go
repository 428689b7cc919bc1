package pages

import (
	"vibecode_spa/web/templates/shared"
)

const (
	HomeTitle    = "Vibecode SPA"
	HomeSubtitle = "AI-safe Vite + Supabase template"
	CommunityCTA = "Join our community"
)

// CommunityLinks are the outbound links shown on the landing page
var CommunityLinks = []shared.LinkDescriptor{
	{Label: "Discord", Href: "https://discord.gg/xQR6DNtY", AriaLabel: "Join our Discord"},
	{Label: "GitHub", Href: "https://github.com/jigjoy-io", AriaLabel: "Visit our GitHub"},
	{Label: "Website", Href: "https://jigjoy.io", AriaLabel: "Visit our website"},
}
