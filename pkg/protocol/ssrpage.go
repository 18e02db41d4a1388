package protocol

import "strings"

// SSRPage is the external renderer's output for one page: head fragments
// in document order plus the pre-rendered body markup. Its JSON shape is
// the renderer's response body: {"head": [string...], "body": string}.
type SSRPage struct {
	Head []string `json:"head"`
	Body string   `json:"body"`
}

// HeadHTML joins the head fragments for splicing into a document's <head>.
func (p *SSRPage) HeadHTML() string {
	return strings.Join(p.Head, "\n")
}
