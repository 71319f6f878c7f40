// Package feedfetcher выкачивает фид объявлений по HTTP.
// Инкапсулирует настроенный colly.Collector; каждый запрос страницы
// работает на одноразовом клоне коллектора, лимиты общие.
package feedfetcher

import (
	"log"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// FeedFetcherAdapter отвечает за все обращения к HTTP-фиду.
type FeedFetcherAdapter struct {
	collector *colly.Collector
}

// NewFeedFetcherAdapter настраивает коллектор: один домен, вежливые
// лимиты, случайный User-Agent.
func NewFeedFetcherAdapter(allowedDomain string, delay time.Duration) *FeedFetcherAdapter {
	c := colly.NewCollector(colly.AllowedDomains(allowedDomain))

	// Параллелизм 1: страницы фида идут строго последовательно,
	// пагинация курсорная и порядок имеет значение.
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  allowedDomain,
		Parallelism: 1,
		RandomDelay: delay,
	})
	if err != nil {
		log.Fatalf("FeedFetcherAdapter: Failed to set limit rule: %v", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("FeedFetcherAdapter: Error during request to %s: Status=%d, Error=%v", r.Request.URL, r.StatusCode, err)
	})
	c.OnRequest(func(r *colly.Request) {
		log.Printf("FeedFetcherAdapter: Making request to %s", r.URL.String())
	})

	return &FeedFetcherAdapter{collector: c}
}
