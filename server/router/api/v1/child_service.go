package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

const (
	feedLimit = 20
	// summaryPage wraps the rendered summary so it can be opened directly in a browser.
	summaryPage = "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n%s</body></html>\n"
)

// GetChildSummary renders the child overview as markdown, or as HTML with format=html.
// GET /api/v1/children/:name/summary
func (s *APIV1Service) GetChildSummary(c echo.Context) error {
	ctx := c.Request().Context()
	overview, err := s.Service.Overview(ctx, c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	md := overview.Markdown()

	switch format := c.QueryParam("format"); format {
	case "", "markdown", "md":
		return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
	case "html":
		body, err := s.MarkdownService.RenderHTML([]byte(md))
		if err != nil {
			return writeError(c, err)
		}
		title := fmt.Sprintf("%s summary", overview.Child.FullName())
		return c.HTML(http.StatusOK, fmt.Sprintf(summaryPage, title, body))
	default:
		return badRequest(c, fmt.Sprintf("unknown format %q (use markdown or html)", format))
	}
}

// GetChildFeed returns the child's recent activity as an Atom feed.
// GET /api/v1/children/:name/feed.atom
func (s *APIV1Service) GetChildFeed(c echo.Context) error {
	ctx := c.Request().Context()
	limit := feedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = n
	}

	child, entries, err := s.Service.RecentActivity(ctx, c.Param("name"), limit)
	if err != nil {
		return writeError(c, err)
	}

	base := s.Profile.BaseURL
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s activity", child.FullName()),
		Link:        &feeds.Link{Href: base},
		Description: fmt.Sprintf("Recent feedings, sleep, diaper changes and tummy time for %s", child.FirstName),
		Id:          fmt.Sprintf("%s/children/%s/", base, url.PathEscape(child.Slug)),
	}
	for _, entry := range entries {
		item := &feeds.Item{
			Id:          fmt.Sprintf("%s:%d", entry.Kind, entry.ID),
			Title:       entry.Title,
			Link:        &feeds.Link{Href: base},
			Description: entry.Details,
			Created:     entry.Time,
			Updated:     entry.Time,
		}
		feed.Items = append(feed.Items, item)
		if entry.Time.After(feed.Updated) {
			feed.Updated = entry.Time
		}
	}
	if len(entries) > 0 {
		feed.Created = entries[len(entries)-1].Time
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}
