package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	gocache "github.com/patrickmn/go-cache"
)

type newsRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
	cache  *gocache.Cache
	parser *gofeed.Parser
}

// NewNewsRepository creates the company news signal provider. Articles are
// pulled from an RSS feed; in deep runs the article bodies are fetched and
// extracted as well.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) SignalProvider {
	return &newsRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:    cfg,
		logger: log,
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
		parser: gofeed.NewParser(),
	}
}

func (r *newsRepository) Kind() dto.SignalKind {
	return dto.SignalNews
}

func (r *newsRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	if cached, found := r.cache.Get(ticker); found {
		digest := cached.(*dto.NewsDigest)
		return &dto.SignalResult{Kind: dto.SignalNews, News: digest}, nil
	}

	feedURL := fmt.Sprintf("%s?q=%s+stock&hl=en-US&gl=US&ceid=US:en",
		r.cfg.News.FeedURL, url.QueryEscape(ticker))
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	maxArticles := r.cfg.News.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 10
	}

	articles := make([]dto.NewsArticle, 0, maxArticles)
	for _, item := range feed.Items {
		if len(articles) >= maxArticles {
			break
		}
		article := dto.NewsArticle{
			Title:  item.Title,
			Source: feedSource(item),
			URL:    item.Link,
		}
		if item.PublishedParsed != nil {
			article.Published = *item.PublishedParsed
		}
		if r.cfg.News.FetchArticles {
			if excerpt, err := r.extractArticle(ctx, item.Link); err != nil {
				r.logger.Warn("Failed to extract article body",
					logger.ErrorField(err), logger.StringField("url", item.Link))
			} else {
				article.Excerpt = excerpt
			}
		}
		articles = append(articles, article)
	}

	digest := &dto.NewsDigest{Articles: articles, Count: len(articles)}
	r.cache.Set(ticker, digest, gocache.DefaultExpiration)
	return &dto.SignalResult{Kind: dto.SignalNews, News: digest}, nil
}

// extractArticle downloads a page and pulls out the readable text.
func (r *newsRepository) extractArticle(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}

	text := strings.Join(strings.Fields(docHTML.Text()), " ")
	if len(text) > 500 {
		text = text[:500]
	}
	return text, nil
}

func feedSource(item *gofeed.Item) string {
	// Google News appends " - Source" to titles when no source element exists.
	if item.Custom != nil {
		if source, ok := item.Custom["source"]; ok && source != "" {
			return source
		}
	}
	if idx := strings.LastIndex(item.Title, " - "); idx > 0 {
		return item.Title[idx+3:]
	}
	return ""
}
