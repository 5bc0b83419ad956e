// Package feed renders the RSS 2.0 feed of all posts.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/post"
)

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
}

// Render produces the feed document for posts, newest first. The posts
// slice is not modified.
func Render(site config.SiteConfig, posts []*post.Post) (string, error) {
	ordered := make([]*post.Post, len(posts))
	copy(ordered, posts)
	post.SortByDateDesc(ordered)

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       site.Title,
			Link:        site.BaseURL,
			Description: site.Description,
		},
	}

	for _, p := range ordered {
		link := permalink(site.BaseURL, p.URL)
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.Format(time.RFC1123Z),
			Description: p.Content,
			Author:      p.Author,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode feed: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

func permalink(baseURL, url string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return base + "/" + url + "/"
}
