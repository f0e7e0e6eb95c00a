// Package fetch retrieves extra files given as http(s) URLs. HTML pages are
// converted to Markdown so the listing reads like a text file.
package fetch

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/jadenpxrk/treedump/internal/sniff"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// Document is a fetched resource.
type Document struct {
	URL    string
	Name   string // page title for HTML, else last path segment
	Text   string
	Binary bool
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher downloads documents.
type Fetcher struct {
	Client *http.Client
}

func New() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: DefaultTimeout}}
}

// Fetch downloads rawURL. Non-2xx responses are errors.
func (f *Fetcher) Fetch(rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	res, err := f.Client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch URL %s: status code %d", rawURL, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}

	doc := &Document{URL: rawURL, Name: baseName(u)}
	if sniff.IsBinaryBytes(body) {
		doc.Binary = true
		return doc, nil
	}

	contentType := strings.ToLower(res.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		doc.Text = string(body)
		return doc, nil
	}

	if title := pageTitle(body); title != "" {
		doc.Name = title
	}
	converter := md.NewConverter(u.Host, true, nil)
	markdown, err := converter.ConvertReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to Markdown for %s: %w", rawURL, err)
	}
	doc.Text = markdown.String()
	return doc, nil
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func baseName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		return u.Host
	}
	return name
}
