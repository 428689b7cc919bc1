package shared

import (
	"errors"
	"fmt"
	"net/url"
)

const (
	// TargetNewContext opens the destination in a new browsing context
	TargetNewContext = "_blank"
	// RelIsolated keeps window.opener and the Referer header from leaking
	RelIsolated = "noopener noreferrer"
)

var ErrInvalidLink = errors.New("invalid link descriptor")

// LinkDescriptor describes an outbound link
type LinkDescriptor struct {
	Label     string
	Href      string
	AriaLabel string
}

// Validate checks that the destination is an absolute https URL and that
// the link has an accessible name.
func (d LinkDescriptor) Validate() error {
	u, err := url.Parse(d.Href)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLink, d.Href, err)
	}
	if !u.IsAbs() || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute https URL", ErrInvalidLink, d.Href)
	}
	if d.AriaLabel == "" && d.Label == "" {
		return fmt.Errorf("%w: %q has no accessible name", ErrInvalidLink, d.Href)
	}
	return nil
}
